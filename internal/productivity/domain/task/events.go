package task

import (
	"github.com/felixgeelhaar/tempo/internal/shared/domain"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated   = "task.created"
	RoutingKeyCompleted = "task.completed"
	RoutingKeyDeleted   = "task.deleted"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Name          string  `json:"name"`
	Priority      string  `json:"priority"`
	DurationHours float64 `json:"duration_hours"`
	Deadline      string  `json:"deadline"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(t *Task) *TaskCreated {
	return &TaskCreated{
		BaseEvent:     domain.NewBaseEvent(t.id.String(), AggregateType, RoutingKeyCreated),
		Name:          t.name,
		Priority:      t.priority.String(),
		DurationHours: t.duration.Hours(),
		Deadline:      t.deadline.String(),
	}
}

// TaskCompleted is emitted when a task is completed.
type TaskCompleted struct {
	domain.BaseEvent
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(id ID) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent: domain.NewBaseEvent(id.String(), AggregateType, RoutingKeyCompleted),
	}
}

// TaskDeleted is emitted when a task is removed from the registry.
type TaskDeleted struct {
	domain.BaseEvent
	Name string `json:"name"`
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(id ID, name string) *TaskDeleted {
	return &TaskDeleted{
		BaseEvent: domain.NewBaseEvent(id.String(), AggregateType, RoutingKeyDeleted),
		Name:      name,
	}
}
