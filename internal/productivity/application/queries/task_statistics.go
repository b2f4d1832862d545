package queries

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
)

// TaskStatistics summarises the task list.
type TaskStatistics struct {
	Total     int
	Pending   int
	Completed int
	// PendingHours is the work still waiting to be scheduled.
	PendingHours float64
	ByPriority   map[string]int
}

// TaskStatisticsHandler computes task statistics.
type TaskStatisticsHandler struct {
	taskRepo task.Repository
}

// NewTaskStatisticsHandler creates a new TaskStatisticsHandler.
func NewTaskStatisticsHandler(taskRepo task.Repository) *TaskStatisticsHandler {
	return &TaskStatisticsHandler{taskRepo: taskRepo}
}

// Handle returns counts over all stored tasks.
func (h *TaskStatisticsHandler) Handle(ctx context.Context) (*TaskStatistics, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &TaskStatistics{
		Total:      len(tasks),
		ByPriority: make(map[string]int),
	}
	for _, t := range tasks {
		if t.IsCompleted() {
			stats.Completed++
			continue
		}
		stats.Pending++
		stats.PendingHours += t.Duration().Hours()
		stats.ByPriority[t.Priority().String()]++
	}

	return stats, nil
}
