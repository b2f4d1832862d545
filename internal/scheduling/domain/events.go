package domain

import (
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
)

const (
	AggregateType = "Schedule"

	RoutingKeyScheduleGenerated = "scheduling.schedule.generated"
	RoutingKeyScheduleCleared   = "scheduling.schedule.cleared"
	RoutingKeyTaskUnscheduled   = "scheduling.task.unscheduled"
)

// ScheduleGenerated is emitted after every generation run
type ScheduleGenerated struct {
	sharedDomain.BaseEvent
	Success         bool     `json:"success"`
	PlacedCount     int      `json:"placed_count"`
	UnplacedCount   int      `json:"unplaced_count"`
	UnplacedTaskIDs []string `json:"unplaced_task_ids"`
}

// NewScheduleGenerated creates a ScheduleGenerated event keyed by the run id
func NewScheduleGenerated(run ScheduleRun, unplacedIDs []string) *ScheduleGenerated {
	return &ScheduleGenerated{
		BaseEvent:       sharedDomain.NewBaseEvent(run.ID.String(), AggregateType, RoutingKeyScheduleGenerated),
		Success:         run.Success,
		PlacedCount:     run.PlacedCount,
		UnplacedCount:   run.UnplacedCount,
		UnplacedTaskIDs: unplacedIDs,
	}
}

// ScheduleCleared is emitted when all placements are discarded
type ScheduleCleared struct {
	sharedDomain.BaseEvent
	RemovedCount int `json:"removed_count"`
}

// NewScheduleCleared creates a ScheduleCleared event
func NewScheduleCleared(removed int) *ScheduleCleared {
	return &ScheduleCleared{
		BaseEvent:    sharedDomain.NewBaseEvent("weekly", AggregateType, RoutingKeyScheduleCleared),
		RemovedCount: removed,
	}
}

// TaskUnscheduled is emitted when a task's placements are removed
type TaskUnscheduled struct {
	sharedDomain.BaseEvent
	TaskID       string `json:"task_id"`
	RemovedCount int    `json:"removed_count"`
}

// NewTaskUnscheduled creates a TaskUnscheduled event
func NewTaskUnscheduled(taskID string, removed int) *TaskUnscheduled {
	return &TaskUnscheduled{
		BaseEvent:    sharedDomain.NewBaseEvent("weekly", AggregateType, RoutingKeyTaskUnscheduled),
		TaskID:       taskID,
		RemovedCount: removed,
	}
}
