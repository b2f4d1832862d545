package commands

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// ClearScheduleHandler discards every placement.
type ClearScheduleHandler struct {
	scheduleRepo domain.ScheduleRepository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	locker       lock.Locker
	metrics      observability.Metrics
}

// NewClearScheduleHandler creates a new ClearScheduleHandler.
func NewClearScheduleHandler(
	scheduleRepo domain.ScheduleRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker lock.Locker,
	metrics observability.Metrics,
) *ClearScheduleHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ClearScheduleHandler{
		scheduleRepo: scheduleRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		locker:       locker,
		metrics:      metrics,
	}
}

// Handle stores seven empty days and returns how many placements were dropped.
func (h *ClearScheduleHandler) Handle(ctx context.Context) (int, error) {
	var removed int

	err := lock.With(ctx, h.locker, scheduleLock, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			n, err := h.scheduleRepo.Count(txCtx)
			if err != nil {
				return err
			}
			if err := h.scheduleRepo.Save(txCtx, domain.NewSchedule()); err != nil {
				return err
			}
			removed = n
			return recordEvents(txCtx, h.outboxRepo, domain.NewScheduleCleared(n))
		})
	})
	if err != nil {
		return 0, err
	}

	h.metrics.Counter(observability.MetricPlacementsRemoved, int64(removed))
	return removed, nil
}
