package domain

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
)

// AvailabilityRepository persists the weekday and weekend windows.
type AvailabilityRepository interface {
	// Load returns the stored availability, empty when nothing was saved.
	Load(ctx context.Context) (*WeeklyAvailability, error)

	// Replace overwrites one sequence wholesale.
	Replace(ctx context.Context, kind AvailabilityKind, windows []TimeWindow) error
}

// ScheduleRepository persists the current weekly schedule.
type ScheduleRepository interface {
	// Save overwrites the stored schedule.
	Save(ctx context.Context, schedule *Schedule) error

	// Load rebuilds the stored schedule against tasks. Placements whose
	// task is not in tasks are dropped.
	Load(ctx context.Context, tasks []*task.Task) (*Schedule, error)

	// Count returns the number of stored placements, including any whose
	// task no longer exists.
	Count(ctx context.Context) (int, error)
}

// RunRepository keeps the history of generation runs.
type RunRepository interface {
	// Record stores a run.
	Record(ctx context.Context, run ScheduleRun) error

	// Latest returns the most recent run, or nil when none exists.
	Latest(ctx context.Context) (*ScheduleRun, error)
}
