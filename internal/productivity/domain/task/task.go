package task

import (
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/tempo/internal/shared/domain"
)

var (
	ErrEmptyName           = errors.New("task name cannot be empty")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidID           = errors.New("invalid task id")
)

// Status represents the task lifecycle state.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus converts a stored status name back into a Status.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToUpper(s) {
	case "PENDING":
		return StatusPending, true
	case "COMPLETED":
		return StatusCompleted, true
	default:
		return 0, false
	}
}

// Task represents a unit of work to be scheduled.
// Everything but the status is fixed at creation.
type Task struct {
	domain.Aggregate
	id          ID
	seq         int
	name        string
	description string
	priority    value_objects.Priority
	duration    value_objects.Duration
	deadline    value_objects.Deadline
	status      Status
	completedAt *time.Time
	deleted     bool
}

// NewTask creates a pending task. The id is taken from gen.
func NewTask(
	gen IDGenerator,
	name, description string,
	priority value_objects.Priority,
	duration value_objects.Duration,
	deadline value_objects.Deadline,
) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !priority.IsValid() {
		return nil, value_objects.ErrInvalidPriority
	}
	if duration.IsZero() {
		return nil, value_objects.ErrInvalidDuration
	}

	id, seq := gen.Next()
	t := &Task{
		Aggregate:   domain.NewAggregate(),
		id:          id,
		seq:         seq,
		name:        name,
		description: strings.TrimSpace(description),
		priority:    priority,
		duration:    duration,
		deadline:    deadline,
		status:      StatusPending,
	}

	t.Raise(NewTaskCreated(t))

	return t, nil
}

// RehydrateTask recreates a task from persisted state without raising events.
func RehydrateTask(
	id ID,
	seq int,
	name, description string,
	priority value_objects.Priority,
	duration value_objects.Duration,
	deadline value_objects.Deadline,
	status Status,
	createdAt time.Time,
	completedAt *time.Time,
) *Task {
	updatedAt := createdAt
	if completedAt != nil {
		updatedAt = *completedAt
	}
	return &Task{
		Aggregate:   domain.RestoreAggregate(createdAt, updatedAt),
		id:          id,
		seq:         seq,
		name:        name,
		description: description,
		priority:    priority,
		duration:    duration,
		deadline:    deadline,
		status:      status,
		completedAt: completedAt,
	}
}

// Getters

func (t *Task) ID() ID                           { return t.id }
func (t *Task) Seq() int                         { return t.seq }
func (t *Task) Name() string                     { return t.name }
func (t *Task) Description() string              { return t.description }
func (t *Task) Priority() value_objects.Priority { return t.priority }
func (t *Task) Duration() value_objects.Duration { return t.duration }
func (t *Task) Deadline() value_objects.Deadline { return t.deadline }
func (t *Task) Status() Status                   { return t.status }
func (t *Task) CompletedAt() *time.Time          { return t.completedAt }
func (t *Task) IsCompleted() bool                { return t.status == StatusCompleted }
func (t *Task) IsPending() bool                  { return t.status == StatusPending }
func (t *Task) IsDeleted() bool                  { return t.deleted }

// Complete marks the task as completed.
func (t *Task) Complete() error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}

	now := time.Now().UTC()
	t.status = StatusCompleted
	t.completedAt = &now
	t.Touch()

	t.Raise(NewTaskCompleted(t.id))

	return nil
}

// MarkDeleted records the deletion so the event reaches other contexts.
func (t *Task) MarkDeleted() {
	if t.deleted {
		return
	}
	t.deleted = true
	t.Raise(NewTaskDeleted(t.id, t.name))
}

// String renders the task on one line for listings.
func (t *Task) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(t.id.String())
	b.WriteString("] ")
	b.WriteString(t.name)
	b.WriteString(" - Priority: ")
	b.WriteString(t.priority.String())
	b.WriteString(" - Duration: ")
	b.WriteString(formatHours(t.duration.Hours()))
	b.WriteString("h - Deadline: ")
	b.WriteString(t.deadline.String())
	b.WriteString(" - ")
	b.WriteString(t.status.String())
	return b.String()
}
