package commands

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/services"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveTaskFromScheduleHandler_Handle(t *testing.T) {
	keep := newTask(1, "Keep", value_objects.PriorityHigh, 1)
	drop := newTask(2, "Drop", value_objects.PriorityLow, 1)

	stored := func() *domain.Schedule {
		s := domain.NewSchedule()
		s.Append(domain.NewPlacement(keep, domain.Monday, "09:00", "10:00"))
		s.Append(domain.NewPlacement(drop, domain.Monday, "10:15", "11:15"))
		return s
	}

	t.Run("removes the task's placements", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		metrics := observability.NewInMemoryMetrics()
		handler := NewRemoveTaskFromScheduleHandler(taskRepo, scheduleRepo, outboxRepo, nil,
			lock.NewLocalLocker(), services.DefaultEngineConfig(), metrics)

		ctx := context.Background()
		all := []*task.Task{keep, drop}
		scheduleRepo.On("Count", ctx).Return(2, nil)
		taskRepo.On("FindAll", ctx).Return(all, nil)
		scheduleRepo.On("Load", ctx, all).Return(stored(), nil)
		scheduleRepo.On("Save", ctx, mock.MatchedBy(func(s *domain.Schedule) bool {
			ps := s.Placements(domain.Monday)
			return s.Len() == 1 && ps[0].TaskID() == keep.ID()
		})).Return(nil)
		outboxRepo.On("SaveBatch", ctx, mock.MatchedBy(func(msgs []*outbox.Message) bool {
			return len(msgs) == 1 && msgs[0].RoutingKey == domain.RoutingKeyTaskUnscheduled
		})).Return(nil)

		removed, err := handler.Handle(ctx, RemoveTaskFromScheduleCommand{TaskID: drop.ID()})

		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricPlacementsRemoved))
		scheduleRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("counts placements of a task that was already deleted", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		handler := NewRemoveTaskFromScheduleHandler(taskRepo, scheduleRepo, outboxRepo, nil,
			nil, services.DefaultEngineConfig(), nil)

		ctx := context.Background()
		remaining := []*task.Task{keep}
		loaded := domain.NewSchedule()
		loaded.Append(domain.NewPlacement(keep, domain.Monday, "09:00", "10:00"))

		scheduleRepo.On("Count", ctx).Return(2, nil)
		taskRepo.On("FindAll", ctx).Return(remaining, nil)
		scheduleRepo.On("Load", ctx, remaining).Return(loaded, nil)
		scheduleRepo.On("Save", ctx, mock.Anything).Return(nil)
		outboxRepo.On("SaveBatch", ctx, mock.Anything).Return(nil)

		removed, err := handler.Handle(ctx, RemoveTaskFromScheduleCommand{TaskID: drop.ID()})

		require.NoError(t, err)
		assert.Equal(t, 1, removed)
	})

	t.Run("nothing to do for an unscheduled task", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		handler := NewRemoveTaskFromScheduleHandler(taskRepo, scheduleRepo, outboxRepo, nil,
			nil, services.DefaultEngineConfig(), nil)

		ctx := context.Background()
		all := []*task.Task{keep, drop}
		scheduleRepo.On("Count", ctx).Return(2, nil)
		taskRepo.On("FindAll", ctx).Return(all, nil)
		scheduleRepo.On("Load", ctx, all).Return(stored(), nil)

		removed, err := handler.Handle(ctx, RemoveTaskFromScheduleCommand{TaskID: "T099"})

		require.NoError(t, err)
		assert.Zero(t, removed)
		scheduleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		outboxRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("skips loading an empty schedule", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		scheduleRepo := new(mockScheduleRepo)
		handler := NewRemoveTaskFromScheduleHandler(taskRepo, scheduleRepo, new(mockOutboxRepo), nil,
			nil, services.DefaultEngineConfig(), nil)

		ctx := context.Background()
		scheduleRepo.On("Count", ctx).Return(0, nil)

		removed, err := handler.Handle(ctx, RemoveTaskFromScheduleCommand{TaskID: keep.ID()})

		require.NoError(t, err)
		assert.Zero(t, removed)
		taskRepo.AssertNotCalled(t, "FindAll", mock.Anything)
	})
}
