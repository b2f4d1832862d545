package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	domain.Aggregate
	text string
}

func TestNewAggregate(t *testing.T) {
	n := note{Aggregate: domain.NewAggregate(), text: "draft"}

	assert.False(t, n.CreatedAt().IsZero())
	assert.Equal(t, time.UTC, n.CreatedAt().Location())
	assert.Equal(t, n.CreatedAt(), n.UpdatedAt())
	assert.Empty(t, n.DomainEvents())
}

func TestRestoreAggregate(t *testing.T) {
	created := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	updated := created.Add(3 * time.Hour)

	n := note{Aggregate: domain.RestoreAggregate(created, updated)}

	assert.Equal(t, created, n.CreatedAt())
	assert.Equal(t, updated, n.UpdatedAt())
	assert.Empty(t, n.DomainEvents())
}

func TestAggregate_RaiseKeepsOrder(t *testing.T) {
	n := &note{Aggregate: domain.NewAggregate()}
	created := domain.NewBaseEvent("T001", "Task", "task.created")
	completed := domain.NewBaseEvent("T001", "Task", "task.completed")

	n.Raise(created)
	n.Raise(completed)

	events := n.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, created.EventID(), events[0].EventID())
	assert.Equal(t, completed.EventID(), events[1].EventID())

	n.ClearDomainEvents()
	assert.Empty(t, n.DomainEvents())
}

func TestAggregate_Touch(t *testing.T) {
	created := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	n := &note{Aggregate: domain.RestoreAggregate(created, created)}

	n.Touch()

	assert.Equal(t, created, n.CreatedAt())
	assert.True(t, n.UpdatedAt().After(created))
}

func TestAggregate_SatisfiesEventSource(t *testing.T) {
	var _ domain.EventSource = &note{}
}
