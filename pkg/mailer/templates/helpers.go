package templates

import (
	"time"

	"github.com/oksasatya/go-barber/config"
)

// DateLayout is how appointment dates are written in notifications and emails.
const DateLayout = "January 02, at 15:04h"

// Option pattern
type Option func(*EmailData)

func WithCanceledAt(t time.Time) Option {
	return func(d *EmailData) { d.CanceledAt = t.UTC() }
}

func WithAppointmentID(id string) Option {
	return func(d *EmailData) { d.AppointmentID = id }
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
	}
	if cfg != nil {
		d.CompanyName = cfg.CompanyName
		d.CompanyAddress = cfg.CompanyAddress
		d.AppName = cfg.AppName
		d.LogoURL = cfg.LogoURL
		d.SupportURL = cfg.SupportURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewCancellationData builds the data for the email a provider gets when a client cancels.
func NewCancellationData(cfg *config.Config, providerName, providerEmail, clientName string, at time.Time, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, Cancellation, providerName, providerEmail, opts...)
	d.ProviderName = providerName
	d.ClientName = clientName
	d.AppointmentAt = at
	d.AppointmentText = at.Format(DateLayout)
	return ToMap(d)
}
