// Package worker consumes domain events from RabbitMQ and archives them in Elasticsearch.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

const indexTimeout = 15 * time.Second

// Outcome is what to tell the broker about a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Reject drops a message that can never be processed.
	Reject
	// Requeue hands the message back for another attempt.
	Requeue
)

var errMissingType = errors.New("event has no type")

// Indexer stores a JSON document under an id.
type Indexer interface {
	Index(ctx context.Context, index, docID string, doc []byte) error
}

// ESIndexer indexes through an Elasticsearch client.
type ESIndexer struct {
	Client *elasticsearch.Client
}

func (e ESIndexer) Index(ctx context.Context, index, docID string, doc []byte) error {
	return helpers.ESIndexDocument(ctx, e.Client, index, docID, doc)
}

// archivedEvent is the stored document.
type archivedEvent struct {
	EventID    string          `json:"event_id,omitempty"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	ReceivedAt time.Time       `json:"received_at"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type EventArchiver struct {
	Indexer Indexer
	Index   string
	Logger  *logrus.Logger
	now     func() time.Time
}

func NewEventArchiver(indexer Indexer, index string, logger *logrus.Logger) *EventArchiver {
	return &EventArchiver{Indexer: indexer, Index: index, Logger: logger, now: time.Now}
}

// Handle archives one delivery. The AMQP message id doubles as the document id,
// so a redelivered event overwrites its earlier copy.
func (a *EventArchiver) Handle(ctx context.Context, d amqp.Delivery) Outcome {
	doc, err := a.document(d)
	if err != nil {
		a.Logger.WithError(err).WithField("message_id", d.MessageId).Warn("dropping malformed event")
		return Reject
	}
	body, err := json.Marshal(doc)
	if err != nil {
		a.Logger.WithError(err).WithField("message_id", d.MessageId).Warn("dropping unencodable event")
		return Reject
	}

	c, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	if err := a.Indexer.Index(c, a.Index, d.MessageId, body); err != nil {
		a.Logger.WithError(err).WithFields(logrus.Fields{
			"message_id": d.MessageId,
			"event":      doc.Type,
		}).Error("archive event failed")
		return Requeue
	}
	a.Logger.WithFields(logrus.Fields{"message_id": d.MessageId, "event": doc.Type}).Debug("event archived")
	return Ack
}

func (a *EventArchiver) document(d amqp.Delivery) (*archivedEvent, error) {
	var ev struct {
		Type       string          `json:"type"`
		OccurredAt time.Time       `json:"occurred_at"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		return nil, err
	}
	if ev.Type == "" {
		ev.Type = d.Type
	}
	if ev.Type == "" {
		return nil, errMissingType
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = d.Timestamp
	}
	return &archivedEvent{
		EventID:    d.MessageId,
		Type:       ev.Type,
		OccurredAt: ev.OccurredAt.UTC(),
		ReceivedAt: a.now().UTC(),
		Data:       ev.Data,
	}, nil
}

// Run handles deliveries until the channel closes or ctx is done.
func (a *EventArchiver) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			var err error
			switch a.Handle(ctx, d) {
			case Ack:
				err = d.Ack(false)
			case Reject:
				err = d.Nack(false, false)
			case Requeue:
				err = d.Nack(false, true)
			}
			if err != nil {
				a.Logger.WithError(err).WithField("message_id", d.MessageId).Warn("settle delivery failed")
			}
		}
	}
}
