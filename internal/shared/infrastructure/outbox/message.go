package outbox

import (
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// State is where a message is in its delivery lifecycle.
type State string

const (
	StatePending   State = "pending"
	StatePublished State = "published"
	StateDead      State = "dead"
)

// Message is one outbox row. Payload is an encoded eventbus.Envelope.
type Message struct {
	ID            int64
	EventID       uuid.UUID
	AggregateType string
	AggregateID   string
	RoutingKey    string
	Payload       json.RawMessage
	CreatedAt     time.Time

	// Delivery bookkeeping
	PublishedAt      *time.Time
	NextRetryAt      *time.Time
	RetryCount       int
	LastError        *string
	DeadLetteredAt   *time.Time
	DeadLetterReason *string
}

// NewMessage encodes event as a pending message.
func NewMessage(event domain.DomainEvent) (*Message, error) {
	payload, err := eventbus.MarshalEnvelope(event)
	if err != nil {
		return nil, err
	}
	return &Message{
		EventID:       event.EventID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		RoutingKey:    event.RoutingKey(),
		Payload:       payload,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// NewMessages encodes events in order. Nothing is returned if any fails.
func NewMessages(events []domain.DomainEvent) ([]*Message, error) {
	out := make([]*Message, len(events))
	for i, e := range events {
		m, err := NewMessage(e)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// State reports the message's lifecycle state.
func (m *Message) State() State {
	switch {
	case m.DeadLetteredAt != nil:
		return StateDead
	case m.PublishedAt != nil:
		return StatePublished
	default:
		return StatePending
	}
}

// DueAt reports whether the message may be attempted at now.
func (m *Message) DueAt(now time.Time) bool {
	return m.State() == StatePending && (m.NextRetryAt == nil || !m.NextRetryAt.After(now))
}

// CorrelationID reads the correlation id out of the payload, or "".
func (m *Message) CorrelationID() string {
	env, err := eventbus.DecodeEnvelope(m.RoutingKey, m.Payload)
	if err != nil {
		return ""
	}
	return env.Trace.CorrelationID
}
