package commands

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/services"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// RemoveTaskFromScheduleCommand drops every placement of one task.
type RemoveTaskFromScheduleCommand struct {
	TaskID task.ID
}

// RemoveTaskFromScheduleHandler handles the RemoveTaskFromScheduleCommand.
type RemoveTaskFromScheduleHandler struct {
	taskRepo     task.Repository
	scheduleRepo domain.ScheduleRepository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	locker       lock.Locker
	engineConfig services.EngineConfig
	metrics      observability.Metrics
}

// NewRemoveTaskFromScheduleHandler creates a new RemoveTaskFromScheduleHandler.
func NewRemoveTaskFromScheduleHandler(
	taskRepo task.Repository,
	scheduleRepo domain.ScheduleRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker lock.Locker,
	engineConfig services.EngineConfig,
	metrics observability.Metrics,
) *RemoveTaskFromScheduleHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &RemoveTaskFromScheduleHandler{
		taskRepo:     taskRepo,
		scheduleRepo: scheduleRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		locker:       locker,
		engineConfig: engineConfig,
		metrics:      metrics,
	}
}

// Handle returns how many placements were removed. Placements left behind by
// tasks that no longer exist are dropped too and counted.
func (h *RemoveTaskFromScheduleHandler) Handle(ctx context.Context, cmd RemoveTaskFromScheduleCommand) (int, error) {
	var removed int

	err := lock.With(ctx, h.locker, scheduleLock, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			stored, err := h.scheduleRepo.Count(txCtx)
			if err != nil {
				return err
			}
			if stored == 0 {
				return nil
			}

			tasks, err := h.taskRepo.FindAll(txCtx)
			if err != nil {
				return err
			}
			schedule, err := h.scheduleRepo.Load(txCtx, tasks)
			if err != nil {
				return err
			}

			engine := services.NewSchedulingEngine(h.engineConfig)
			engine.Load(schedule)
			engine.RemoveTask(cmd.TaskID)

			remaining := engine.Schedule()
			removed = stored - remaining.Len()
			if removed == 0 {
				return nil
			}

			if err := h.scheduleRepo.Save(txCtx, remaining); err != nil {
				return err
			}
			return recordEvents(txCtx, h.outboxRepo, domain.NewTaskUnscheduled(cmd.TaskID.String(), removed))
		})
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		h.metrics.Counter(observability.MetricPlacementsRemoved, int64(removed))
	}
	return removed, nil
}
