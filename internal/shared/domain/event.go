package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by an aggregate. RoutingKey names it on the
// event bus, e.g. task.completed.
type DomainEvent interface {
	EventID() uuid.UUID
	AggregateID() string
	AggregateType() string
	RoutingKey() string
	OccurredAt() time.Time
	Metadata() EventMetadata
}

// EventMetadata ties an event to the command invocation that raised it.
type EventMetadata struct {
	CorrelationID uuid.UUID
	CausationID   uuid.UUID
}

// IsZero reports whether no metadata has been attached.
func (m EventMetadata) IsZero() bool {
	return m == EventMetadata{}
}

// BaseEvent is embedded by concrete events to satisfy DomainEvent.
type BaseEvent struct {
	id         uuid.UUID
	aggregate  string
	kind       string
	routingKey string
	at         time.Time
	meta       EventMetadata
}

// NewBaseEvent stamps a new event for the aggregate identified by
// aggregateID and kind.
func NewBaseEvent(aggregateID, kind, routingKey string) BaseEvent {
	return BaseEvent{
		id:         uuid.New(),
		aggregate:  aggregateID,
		kind:       kind,
		routingKey: routingKey,
		at:         time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID { return e.id }

func (e BaseEvent) AggregateID() string { return e.aggregate }

func (e BaseEvent) AggregateType() string { return e.kind }

func (e BaseEvent) RoutingKey() string { return e.routingKey }

func (e BaseEvent) OccurredAt() time.Time { return e.at }

func (e BaseEvent) Metadata() EventMetadata { return e.meta }

// SetMetadata attaches tracing ids. Events are stamped once, just before
// they are written to the outbox.
func (e *BaseEvent) SetMetadata(meta EventMetadata) {
	e.meta = meta
}
