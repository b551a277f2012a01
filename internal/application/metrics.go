package application

import "expvar"

// Counters published under /api/debug/vars.
var (
	appointmentsBooked   = expvar.NewInt("appointments_booked")
	appointmentsCanceled = expvar.NewInt("appointments_canceled")
	slotConflicts        = expvar.NewInt("appointment_slot_conflicts")
	mailJobsPublished    = expvar.NewInt("mail_jobs_published")
	mailJobsFailed       = expvar.NewInt("mail_jobs_failed")
)
