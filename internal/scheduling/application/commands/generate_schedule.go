package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/services"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// GenerateScheduleCommand triggers a full regeneration of the weekly schedule.
type GenerateScheduleCommand struct{}

// GenerateScheduleResult contains the outcome of a generation run.
// Success is false when generation stopped at a task that did not fit.
type GenerateScheduleResult struct {
	Success  bool
	Schedule *domain.Schedule
	Unplaced []*task.Task
	Run      domain.ScheduleRun
}

// GenerateScheduleHandler handles the GenerateScheduleCommand.
type GenerateScheduleHandler struct {
	taskRepo         task.Repository
	availabilityRepo domain.AvailabilityRepository
	scheduleRepo     domain.ScheduleRepository
	runRepo          domain.RunRepository
	outboxRepo       outbox.Repository
	uow              sharedApplication.UnitOfWork
	locker           lock.Locker
	engineConfig     services.EngineConfig
	metrics          observability.Metrics
	logger           *slog.Logger
}

// NewGenerateScheduleHandler creates a new GenerateScheduleHandler.
func NewGenerateScheduleHandler(
	taskRepo task.Repository,
	availabilityRepo domain.AvailabilityRepository,
	scheduleRepo domain.ScheduleRepository,
	runRepo domain.RunRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker lock.Locker,
	engineConfig services.EngineConfig,
	metrics observability.Metrics,
	logger *slog.Logger,
) *GenerateScheduleHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateScheduleHandler{
		taskRepo:         taskRepo,
		availabilityRepo: availabilityRepo,
		scheduleRepo:     scheduleRepo,
		runRepo:          runRepo,
		outboxRepo:       outboxRepo,
		uow:              uow,
		locker:           locker,
		engineConfig:     engineConfig,
		metrics:          metrics,
		logger:           logger,
	}
}

// Handle runs the engine on the pending tasks and persists the result.
func (h *GenerateScheduleHandler) Handle(ctx context.Context, _ GenerateScheduleCommand) (result *GenerateScheduleResult, err error) {
	done := observability.TimeOperation(ctx, "schedule.generate", h.logger, h.metrics)
	defer func() { done(err) }()

	err = lock.With(ctx, h.locker, scheduleLock, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			r, err := h.generate(txCtx)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	h.record(result)
	return result, nil
}

func (h *GenerateScheduleHandler) generate(ctx context.Context) (*GenerateScheduleResult, error) {
	availability, err := h.availabilityRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !availability.IsConfigured() {
		return nil, ErrAvailabilityNotConfigured
	}

	pending, err := h.taskRepo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, ErrNoPendingTasks
	}

	engine := services.NewSchedulingEngine(h.engineConfig)
	success := engine.GenerateFor(pending, availability)
	schedule := engine.Schedule()
	unplaced := schedule.Unplaced(pending)

	run := domain.NewScheduleRun(success, schedule.Len(), len(unplaced))

	if err := h.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	if err := h.runRepo.Record(ctx, run); err != nil {
		return nil, err
	}

	unplacedIDs := make([]string, 0, len(unplaced))
	for _, t := range unplaced {
		unplacedIDs = append(unplacedIDs, t.ID().String())
	}
	if err := recordEvents(ctx, h.outboxRepo, domain.NewScheduleGenerated(run, unplacedIDs)); err != nil {
		return nil, err
	}

	return &GenerateScheduleResult{
		Success:  success,
		Schedule: schedule,
		Unplaced: unplaced,
		Run:      run,
	}, nil
}

func (h *GenerateScheduleHandler) record(result *GenerateScheduleResult) {
	outcome := "complete"
	if !result.Success {
		outcome = "incomplete"
	}
	h.metrics.Counter(observability.MetricScheduleRuns, 1, observability.T("outcome", outcome))
	h.metrics.Gauge(observability.MetricPlacementsCreated, float64(result.Run.PlacedCount))
	h.metrics.Gauge(observability.MetricTasksUnplaced, float64(result.Run.UnplacedCount))

	h.logger.Info("schedule generated",
		"run_id", result.Run.ID,
		"success", result.Success,
		"placed", result.Run.PlacedCount,
		"unplaced", result.Run.UnplacedCount,
	)
	for _, t := range result.Unplaced {
		h.logger.Warn("task could not be scheduled",
			"task_id", t.ID(),
			"name", t.Name(),
			"duration_hours", t.Duration().Hours(),
		)
	}
}
