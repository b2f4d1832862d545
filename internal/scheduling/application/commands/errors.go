package commands

import "errors"

var (
	// ErrAvailabilityNotConfigured is returned when neither weekday nor weekend windows exist.
	ErrAvailabilityNotConfigured = errors.New("no availability configured")
	// ErrNoPendingTasks is returned when there is nothing to schedule.
	ErrNoPendingTasks = errors.New("no pending tasks to schedule")
)

// scheduleLock is the lock name shared by every command that rewrites the schedule.
const scheduleLock = "schedule"
