package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteTaskHandler_Handle(t *testing.T) {
	taskID := task.ID("T001")

	t.Run("successfully completes task", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		metrics := observability.NewInMemoryMetrics()
		handler := NewCompleteTaskHandler(taskRepo, outboxRepo, uow, metrics)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")

		existingTask := newPendingTask(1, "Test task")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, taskID).Return(existingTask, nil)
		taskRepo.On("Save", txCtx, existingTask).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.MatchedBy(func(msgs []*outbox.Message) bool {
			return len(msgs) == 1 && msgs[0].RoutingKey == task.RoutingKeyCompleted
		})).Return(nil)

		result, err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID})

		require.NoError(t, err)
		assert.True(t, existingTask.IsCompleted())
		assert.Equal(t, taskID, result.TaskID)
		assert.Equal(t, "Test task", result.Name)
		assert.Equal(t, *existingTask.CompletedAt(), result.CompletedAt)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricTasksCompleted,
			observability.T("priority", existingTask.Priority().String())))

		uow.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("fails when task not found", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, new(mockOutboxRepo), uow, nil)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, taskID).Return(nil, task.ErrTaskNotFound)

		_, err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID})

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
		uow.AssertExpectations(t)
	})

	t.Run("fails when task already completed", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, new(mockOutboxRepo), uow, nil)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")

		existingTask := newPendingTask(1, "Done already")
		require.NoError(t, existingTask.Complete())

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, taskID).Return(existingTask, nil)

		_, err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID})

		assert.ErrorIs(t, err, task.ErrTaskAlreadyComplete)
		taskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when begin transaction fails", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(new(mockTaskRepo), new(mockOutboxRepo), uow, nil)

		ctx := context.Background()
		beginErr := errors.New("database locked")
		uow.On("Begin", ctx).Return(ctx, beginErr)

		_, err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID})

		assert.ErrorIs(t, err, beginErr)
	})
}
