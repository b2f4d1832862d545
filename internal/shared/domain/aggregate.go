package domain

import "time"

// EventSource is an aggregate holding events that have not been saved yet.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// Aggregate is embedded by aggregate roots. It keeps the creation and update
// times and the events raised since the aggregate was loaded.
type Aggregate struct {
	createdAt time.Time
	updatedAt time.Time
	pending   []DomainEvent
}

// NewAggregate stamps a fresh aggregate with the current UTC time.
func NewAggregate() Aggregate {
	now := time.Now().UTC()
	return Aggregate{createdAt: now, updatedAt: now}
}

// RestoreAggregate rebuilds the embedded state of a stored aggregate.
func RestoreAggregate(createdAt, updatedAt time.Time) Aggregate {
	return Aggregate{createdAt: createdAt, updatedAt: updatedAt}
}

func (a *Aggregate) CreatedAt() time.Time { return a.createdAt }

func (a *Aggregate) UpdatedAt() time.Time { return a.updatedAt }

// Touch moves the update time to now.
func (a *Aggregate) Touch() {
	a.updatedAt = time.Now().UTC()
}

// Raise queues e for the outbox.
func (a *Aggregate) Raise(e DomainEvent) {
	a.pending = append(a.pending, e)
}

// DomainEvents returns the queued events in the order they were raised.
func (a *Aggregate) DomainEvents() []DomainEvent {
	return a.pending
}

// ClearDomainEvents empties the queue once the events are saved.
func (a *Aggregate) ClearDomainEvents() {
	a.pending = nil
}
