package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
)

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	// PendingOnly returns pending tasks in scheduling order instead of
	// every task in creation order.
	PendingOnly bool
	Priority    string // optional filter: HIGH, MEDIUM, LOW
	Overdue     bool   // only pending tasks whose deadline has passed
	Limit       int    // 0 = no limit
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
	now      func() time.Time
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo, now: time.Now}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	var tasks []*task.Task
	var err error

	if query.PendingOnly {
		tasks, err = h.taskRepo.FindPending(ctx)
	} else {
		tasks, err = h.taskRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if query.Priority != "" {
		p, err := value_objects.ParsePriority(query.Priority)
		if err != nil {
			return nil, err
		}
		tasks = filter(tasks, func(t *task.Task) bool { return t.Priority() == p })
	}

	if query.Overdue {
		now := h.now()
		tasks = filter(tasks, func(t *task.Task) bool {
			return t.IsPending() && t.Deadline().IsOverdue(now)
		})
	}

	if query.Limit > 0 && len(tasks) > query.Limit {
		tasks = tasks[:query.Limit]
	}

	return toTaskDTOs(tasks), nil
}

func filter(tasks []*task.Task, keep func(*task.Task) bool) []*task.Task {
	var filtered []*task.Task
	for _, t := range tasks {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
