package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-catalog/internal/application/dto"
	"github.com/oksasatya/go-ddd-catalog/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-catalog/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Drop nacks without requeue; the message can never succeed.
	Drop
	// Retry nacks with requeue.
	Retry
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	case Retry:
		return "retry"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

var errMalformedEvent = errors.New("malformed event")

// WelcomeMailer turns user.created events into welcome emails.
type WelcomeMailer struct {
	Sender   mailer.Sender
	Branding mailtpl.Branding
	Logger   *logrus.Logger
}

func NewWelcomeMailer(sender mailer.Sender, b mailtpl.Branding, logger *logrus.Logger) *WelcomeMailer {
	return &WelcomeMailer{Sender: sender, Branding: b, Logger: orDiscard(logger)}
}

// Handle processes one raw queue message.
func (w *WelcomeMailer) Handle(ctx context.Context, body []byte) Outcome {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil || evt.Type == "" {
		w.Logger.WithError(errors.Join(errMalformedEvent, err)).Warn("dropping message")
		return Drop
	}
	if evt.Type != EventUserCreated {
		return Ack
	}

	job, err := w.welcomeJob(evt)
	if err != nil {
		w.Logger.WithError(err).WithField("aggregate_id", evt.AggregateID).Warn("dropping user.created event")
		return Drop
	}

	subject, text, html, err := mailtpl.Render(job.Template, job.Data)
	if err != nil {
		w.Logger.WithError(err).WithField("template", job.Template).Error("render failed")
		return Drop
	}
	if err := w.Sender.Send(ctx, job.To, subject, text, html); err != nil {
		w.Logger.WithError(err).WithField("user_id", evt.AggregateID).Error("send welcome email failed")
		if errors.Is(err, mailer.ErrPermanent) {
			return Drop
		}
		return Retry
	}
	w.Logger.WithField("user_id", evt.AggregateID).Info("welcome email sent")
	return Ack
}

func (w *WelcomeMailer) welcomeJob(evt Event) (mailer.EmailJob, error) {
	var u dto.UserResponse
	if len(evt.Data) == 0 {
		return mailer.EmailJob{}, fmt.Errorf("%w: no user payload", errMalformedEvent)
	}
	if err := json.Unmarshal(evt.Data, &u); err != nil {
		return mailer.EmailJob{}, fmt.Errorf("%w: %v", errMalformedEvent, err)
	}
	if u.Email == "" {
		return mailer.EmailJob{}, fmt.Errorf("%w: user has no email", errMalformedEvent)
	}

	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(w.Branding, u.Name, u.Email, mailtpl.WithTime(evt.OccurredAt)),
	}
	job.EnsureRecipient()
	return job, nil
}
