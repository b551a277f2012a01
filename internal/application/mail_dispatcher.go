package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-barber/config"
	"github.com/oksasatya/go-barber/internal/domain/entity"
	"github.com/oksasatya/go-barber/pkg/mailer"
	mailtpl "github.com/oksasatya/go-barber/pkg/mailer/templates"
)

// JobPublisher is the queue the email worker consumes from.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// MailDispatcher enqueues cancellation emails for the email worker.
// Delivery is best-effort: no retry and no caller visibility of failures.
type MailDispatcher struct {
	Pub     JobPublisher
	Cfg     *config.Config
	Enabled bool
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewMailDispatcher(pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *MailDispatcher {
	enabled := pub != nil
	if cfg != nil {
		enabled = enabled && cfg.MailSendEnabled
	}
	return &MailDispatcher{Pub: pub, Cfg: cfg, Enabled: enabled, Logger: logger, Timeout: 5 * time.Second}
}

// CancellationJob builds the queued job for a canceled appointment with Provider and User joined.
func CancellationJob(cfg *config.Config, a *entity.Appointment) mailer.EmailJob {
	var providerName, providerEmail, clientName string
	if a.Provider != nil {
		providerName, providerEmail = a.Provider.Name, a.Provider.Email
	}
	if a.User != nil {
		clientName = a.User.Name
	}
	opts := []mailtpl.Option{mailtpl.WithAppointmentID(a.ID)}
	if a.CanceledAt != nil {
		opts = append(opts, mailtpl.WithCanceledAt(*a.CanceledAt))
	}
	return mailer.EmailJob{
		To:            providerEmail,
		Template:      mailtpl.Cancellation,
		Data:          mailtpl.NewCancellationData(cfg, providerName, providerEmail, clientName, a.Date, opts...),
		AppointmentID: a.ID,
	}
}

// DispatchCancellation publishes the cancellation job. Errors are logged and dropped.
func (d *MailDispatcher) DispatchCancellation(ctx context.Context, a *entity.Appointment) {
	if d == nil || !d.Enabled || d.Pub == nil {
		return
	}
	job := CancellationJob(d.Cfg, a)
	if job.To == "" {
		if d.Logger != nil {
			d.Logger.WithField("appointment_id", a.ID).Warn("cancellation mail skipped: provider email unknown")
		}
		return
	}

	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.Timeout)
	defer cancel()
	if err := d.Pub.PublishJSON(c, job); err != nil {
		mailJobsFailed.Add(1)
		if d.Logger != nil {
			d.Logger.WithError(err).WithField("appointment_id", a.ID).Warn("failed to publish cancellation mail")
		}
		return
	}
	mailJobsPublished.Add(1)
}
