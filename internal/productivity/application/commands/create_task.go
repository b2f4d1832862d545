package commands

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	Name          string
	Description   string
	Priority      string
	DurationHours float64
	Deadline      string
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID task.ID
	Task   *task.Task
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	ids        task.IDGenerator
	metrics    observability.Metrics
}

// NewCreateTaskHandler creates a new CreateTaskHandler. With a nil ids
// generator, ids continue from the highest sequence the repository has seen.
func NewCreateTaskHandler(
	taskRepo task.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	ids task.IDGenerator,
	metrics observability.Metrics,
) *CreateTaskHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &CreateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		ids:        ids,
		metrics:    metrics,
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	priority := value_objects.PriorityMedium
	if cmd.Priority != "" {
		p, err := value_objects.ParsePriority(cmd.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	duration, err := value_objects.NewDuration(cmd.DurationHours)
	if err != nil {
		return nil, err
	}

	deadline, err := value_objects.NewDeadline(cmd.Deadline)
	if err != nil {
		return nil, err
	}

	var result *CreateTaskResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		ids := h.ids
		if ids == nil {
			last, err := h.taskRepo.MaxSeq(txCtx)
			if err != nil {
				return err
			}
			ids = task.NewSequenceGenerator(last)
		}

		t, err := task.NewTask(ids, cmd.Name, cmd.Description, priority, duration, deadline)
		if err != nil {
			return err
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		if err := saveEvents(txCtx, h.outboxRepo, t); err != nil {
			return err
		}

		result = &CreateTaskResult{TaskID: t.ID(), Task: t}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.metrics.Counter(observability.MetricTasksCreated, 1, observability.T("priority", priority.String()))
	return result, nil
}
