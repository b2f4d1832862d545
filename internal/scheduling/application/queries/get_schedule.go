package queries

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

// ScheduleView is the persisted schedule with the pending tasks it leaves out.
type ScheduleView struct {
	Schedule *domain.Schedule
	// Unplaced holds pending tasks absent from every placement, in
	// scheduling order.
	Unplaced []*task.Task
	// LastRun is nil until the first generation.
	LastRun *domain.ScheduleRun
}

// GetScheduleHandler assembles a ScheduleView.
type GetScheduleHandler struct {
	taskRepo     task.Repository
	scheduleRepo domain.ScheduleRepository
	runRepo      domain.RunRepository
}

// NewGetScheduleHandler creates a new GetScheduleHandler.
func NewGetScheduleHandler(taskRepo task.Repository, scheduleRepo domain.ScheduleRepository, runRepo domain.RunRepository) *GetScheduleHandler {
	return &GetScheduleHandler{
		taskRepo:     taskRepo,
		scheduleRepo: scheduleRepo,
		runRepo:      runRepo,
	}
}

// Handle executes the query.
func (h *GetScheduleHandler) Handle(ctx context.Context) (*ScheduleView, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	schedule, err := h.scheduleRepo.Load(ctx, tasks)
	if err != nil {
		return nil, err
	}

	pending := task.FilterPending(tasks)
	task.SortForScheduling(pending)

	run, err := h.runRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}

	return &ScheduleView{
		Schedule: schedule,
		Unplaced: schedule.Unplaced(pending),
		LastRun:  run,
	}, nil
}
