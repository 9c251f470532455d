package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"
)

// ErrPermanent marks a send that will fail the same way on every retry.
var ErrPermanent = errors.New("mailer: permanent failure")

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string

	client *mg.MailgunImpl
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender, client: mg.NewMailgun(domain, apiKey)}
}

// Send sends an email via Mailgun. html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return classify(err)
}

// classify wraps Mailgun 4xx responses other than 429 in ErrPermanent.
func classify(err error) error {
	var ure *mg.UnexpectedResponseError
	if !errors.As(err, &ure) {
		return err
	}
	if ure.Actual >= 400 && ure.Actual < 500 && ure.Actual != http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", ErrPermanent, err)
	}
	return err
}

// LogSender stands in for Mailgun when sending is disabled.
type LogSender struct {
	Logger *logrus.Logger
}

func (s LogSender) Send(_ context.Context, to, subject, _, _ string) error {
	s.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail sending disabled; skipped")
	return nil
}

var (
	_ Sender = (*Mailgun)(nil)
	_ Sender = LogSender{}
)
