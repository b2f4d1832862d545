package queries

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
)

// GetTaskQuery looks a task up by id as typed by the user ("t3", "T003").
type GetTaskQuery struct {
	TaskID string
}

// GetTaskHandler loads a single task.
type GetTaskHandler struct {
	tasks task.Repository
}

func NewGetTaskHandler(tasks task.Repository) *GetTaskHandler {
	return &GetTaskHandler{tasks: tasks}
}

// Handle returns task.ErrInvalidID for a malformed id and
// task.ErrTaskNotFound when no task has it.
func (h *GetTaskHandler) Handle(ctx context.Context, q GetTaskQuery) (TaskDTO, error) {
	id, err := task.ParseID(q.TaskID)
	if err != nil {
		return TaskDTO{}, err
	}

	t, err := h.tasks.FindByID(ctx, id)
	switch {
	case err != nil:
		return TaskDTO{}, err
	case t == nil:
		return TaskDTO{}, task.ErrTaskNotFound
	}
	return toTaskDTO(t), nil
}
