package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-barber/pkg/helpers"
	"github.com/oksasatya/go-barber/pkg/mailer"
	mailtpl "github.com/oksasatya/go-barber/pkg/mailer/templates"
)

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

// Sender delivers a rendered email and returns the transport message id.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) (string, error)
}

type worker struct {
	Sender  Sender
	Logger  *logrus.Logger
	Timeout time.Duration
}

// Handle decodes, renders and sends one queued job.
// Malformed or unrenderable jobs are dropped; transport failures are retried.
func (w *worker) Handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Error("bad message dropped")
		return outcomeDrop
	}
	if job.To == "" {
		w.Logger.WithField("template", job.Template).Error("job without recipient dropped")
		return outcomeDrop
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			w.Logger.WithError(err).WithField("template", job.Template).Error("render failed")
			return outcomeDrop
		}
		subject, text, html = s, t, h
		if subject == "" {
			subject = helpers.SubjectFor(job.Template)
		}
	}
	if subject == "" || (text == "" && html == "") {
		w.Logger.WithField("to", job.To).Error("empty email dropped")
		return outcomeDrop
	}

	c, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()
	id, err := w.Sender.Send(c, job.To, subject, text, html)
	if err != nil {
		w.Logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "appointment_id": job.AppointmentID}).Warn("send failed")
		return outcomeRetry
	}
	w.Logger.WithFields(logrus.Fields{
		"to":             job.To,
		"template":       job.Template,
		"appointment_id": job.AppointmentID,
		"message_id":     id,
	}).Info("email sent")
	return outcomeAck
}
