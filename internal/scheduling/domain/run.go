package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleRun records the outcome of one generation.
type ScheduleRun struct {
	ID            uuid.UUID
	GeneratedAt   time.Time
	Success       bool
	PlacedCount   int
	UnplacedCount int
}

// NewScheduleRun stamps a run with a fresh id and the current time.
func NewScheduleRun(success bool, placed, unplaced int) ScheduleRun {
	return ScheduleRun{
		ID:            uuid.New(),
		GeneratedAt:   time.Now().UTC(),
		Success:       success,
		PlacedCount:   placed,
		UnplacedCount: unplaced,
	}
}
