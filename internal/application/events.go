package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventUserRegistered       = "user.registered"
	EventUserDeleted          = "user.deleted"
	EventListingCreated       = "listing.created"
	EventListingDeleted       = "listing.deleted"
	EventInquiryCreated       = "inquiry.created"
	EventInquiryStatusChanged = "inquiry.status_changed"
	EventContactCreated       = "contact.created"
)

const publishTimeout = 3 * time.Second

// EventPublisher is implemented by helpers.RabbitPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// DomainEvent is the message body of every published event.
type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// Events publishes domain events best effort: failures are logged, never returned.
type Events struct {
	Pub    EventPublisher
	Logger *logrus.Logger
}

func NewEvents(pub EventPublisher, logger *logrus.Logger) *Events {
	return &Events{Pub: pub, Logger: logger}
}

func (e *Events) Emit(ctx context.Context, eventType string, data map[string]any) {
	if e == nil || e.Pub == nil {
		return
	}
	// detach from request cancellation so a finished response does not drop the event
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	ev := DomainEvent{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
	if err := e.Pub.Publish(c, eventType, ev); err != nil && e.Logger != nil {
		e.Logger.WithError(err).WithField("event", eventType).Warn("publish event failed")
	}
}
