package entity

import "time"

// CancellationWindow is how long before its date an appointment stops being cancelable.
const CancellationWindow = 2 * time.Hour

// Appointment is a booking of one provider hour by a requester (UserID).
// Provider and User are only populated by queries that join them.
type Appointment struct {
	ID         string
	UserID     string
	ProviderID string
	Date       time.Time
	CanceledAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Provider *User
	User     *User
}

// StartOfHour truncates t to the beginning of its hour in t's own location.
func StartOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func (a *Appointment) Canceled() bool {
	return a.CanceledAt != nil
}

// Past reports whether the appointment date is before now.
func (a *Appointment) Past(now time.Time) bool {
	return a.Date.Before(now)
}

// Cancelable reports whether more than CancellationWindow remains until the appointment.
func (a *Appointment) Cancelable(now time.Time) bool {
	return a.Date.Sub(now) > CancellationWindow
}
