package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// CompleteTaskCommand marks one task done.
type CompleteTaskCommand struct {
	TaskID task.ID
}

// CompleteTaskResult describes the task that was completed.
type CompleteTaskResult struct {
	TaskID      task.ID
	Name        string
	CompletedAt time.Time
}

// CompleteTaskHandler completes a task and queues task.completed, which
// clears its placements once the outbox drains.
type CompleteTaskHandler struct {
	tasks   task.Repository
	outbox  outbox.Repository
	uow     sharedApplication.UnitOfWork
	metrics observability.Metrics
}

func NewCompleteTaskHandler(tasks task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, metrics observability.Metrics) *CompleteTaskHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &CompleteTaskHandler{tasks: tasks, outbox: outboxRepo, uow: uow, metrics: metrics}
}

// Handle fails with task.ErrTaskNotFound or task.ErrTaskAlreadyComplete.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (CompleteTaskResult, error) {
	var done *task.Task
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(ctx context.Context) error {
		t, err := h.tasks.FindByID(ctx, cmd.TaskID)
		if err != nil {
			return err
		}
		if err := t.Complete(); err != nil {
			return fmt.Errorf("%s: %w", t.ID(), err)
		}
		if err := h.tasks.Save(ctx, t); err != nil {
			return err
		}
		done = t
		return saveEvents(ctx, h.outbox, t)
	})
	if err != nil {
		return CompleteTaskResult{}, err
	}

	h.metrics.Counter(observability.MetricTasksCompleted, 1, observability.T("priority", done.Priority().String()))
	return CompleteTaskResult{
		TaskID:      done.ID(),
		Name:        done.Name(),
		CompletedAt: *done.CompletedAt(),
	}, nil
}
