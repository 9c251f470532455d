package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventUserCreated    = "user.created"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
)

// Event is the message published after a successful write.
type Event struct {
	Type        string          `json:"type"`
	AggregateID int64           `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// EventPublisher is satisfied by helpers.RabbitPublisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

func NewEvent(eventType string, aggregateID int64, data any) (Event, error) {
	evt := Event{Type: eventType, AggregateID: aggregateID, OccurredAt: time.Now().UTC()}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return Event{}, err
		}
		evt.Data = b
	}
	return evt, nil
}

// publish is best effort: the write already happened, so a broker failure is only logged.
func publish(ctx context.Context, pub EventPublisher, logger *logrus.Logger, eventType string, id int64, data any) {
	if pub == nil {
		return
	}
	evt, err := NewEvent(eventType, id, data)
	if err == nil {
		err = pub.PublishJSON(ctx, evt)
	}
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"event": eventType, "aggregate_id": id}).Warn("publish event failed")
	}
}
