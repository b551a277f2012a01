package mailer

import (
	"context"
	"strings"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun delivers rendered emails through the Mailgun HTTP API.
type Mailgun struct {
	client  *mg.MailgunImpl
	sender  string
	timeout time.Duration
}

// NewMailgun builds the client once for the worker's lifetime.
// region "eu" routes through the EU endpoint; anything else uses the default US one.
func NewMailgun(domain, apiKey, sender, region string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if strings.EqualFold(region, "eu") {
		client.SetAPIBase(mg.APIBaseEU)
	}
	return &Mailgun{client: client, sender: sender, timeout: 10 * time.Second}
}

// Send delivers one message and returns the Mailgun message id. html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) (string, error) {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	_, id, err := m.client.Send(c, msg)
	return id, err
}
