package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskHandler_Handle(t *testing.T) {
	validCmd := CreateTaskCommand{
		Name:          "Write report",
		Description:   "quarterly numbers",
		Priority:      "high",
		DurationHours: 2,
		Deadline:      "15-03-2025",
	}

	t.Run("creates task with id continuing the stored sequence", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		metrics := observability.NewInMemoryMetrics()
		handler := NewCreateTaskHandler(taskRepo, outboxRepo, uow, nil, metrics)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		taskRepo.On("MaxSeq", txCtx).Return(4, nil)
		taskRepo.On("Save", txCtx, mock.AnythingOfType("*task.Task")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.MatchedBy(func(msgs []*outbox.Message) bool {
			return len(msgs) == 1 && msgs[0].RoutingKey == task.RoutingKeyCreated
		})).Return(nil)

		result, err := handler.Handle(ctx, validCmd)

		require.NoError(t, err)
		assert.Equal(t, task.ID("T005"), result.TaskID)
		assert.Equal(t, 5, result.Task.Seq())
		assert.Equal(t, value_objects.PriorityHigh, result.Task.Priority())
		assert.Equal(t, "15-03-2025", result.Task.Deadline().String())
		assert.Empty(t, result.Task.DomainEvents())
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricTasksCreated, observability.T("priority", "HIGH")))

		uow.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("uses the injected id generator", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		handler := NewCreateTaskHandler(taskRepo, outboxRepo, nil, task.NewSequenceGenerator(41), nil)

		ctx := context.Background()
		taskRepo.On("Save", ctx, mock.AnythingOfType("*task.Task")).Return(nil)
		outboxRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, validCmd)

		require.NoError(t, err)
		assert.Equal(t, task.ID("T042"), result.TaskID)
		taskRepo.AssertNotCalled(t, "MaxSeq", mock.Anything)
	})

	t.Run("defaults priority to medium", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		handler := NewCreateTaskHandler(taskRepo, outboxRepo, nil, task.NewSequenceGenerator(0), nil)

		ctx := context.Background()
		taskRepo.On("Save", ctx, mock.Anything).Return(nil)
		outboxRepo.On("SaveBatch", ctx, mock.Anything).Return(nil)

		cmd := validCmd
		cmd.Priority = ""
		result, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, value_objects.PriorityMedium, result.Task.Priority())
	})

	t.Run("rejects invalid input before opening a transaction", func(t *testing.T) {
		cases := []struct {
			name    string
			mutate  func(*CreateTaskCommand)
			wantErr error
		}{
			{"priority", func(c *CreateTaskCommand) { c.Priority = "urgent" }, value_objects.ErrInvalidPriority},
			{"duration", func(c *CreateTaskCommand) { c.DurationHours = 0 }, value_objects.ErrInvalidDuration},
			{"deadline", func(c *CreateTaskCommand) { c.Deadline = "2025-03-15" }, value_objects.ErrInvalidDeadline},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uow := new(mockUnitOfWork)
				handler := NewCreateTaskHandler(new(mockTaskRepo), new(mockOutboxRepo), uow, nil, nil)

				cmd := validCmd
				tc.mutate(&cmd)
				result, err := handler.Handle(context.Background(), cmd)

				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, result)
				uow.AssertNotCalled(t, "Begin", mock.Anything)
			})
		}
	})

	t.Run("rolls back on empty name", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateTaskHandler(taskRepo, new(mockOutboxRepo), uow, nil, nil)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("MaxSeq", txCtx).Return(0, nil)

		cmd := validCmd
		cmd.Name = "   "
		_, err := handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, task.ErrEmptyName)
		uow.AssertExpectations(t)
		taskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rolls back when the outbox fails", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		metrics := observability.NewInMemoryMetrics()
		handler := NewCreateTaskHandler(taskRepo, outboxRepo, uow, task.NewSequenceGenerator(0), metrics)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")
		outboxErr := errors.New("disk full")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("Save", txCtx, mock.Anything).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.Anything).Return(outboxErr)

		result, err := handler.Handle(ctx, validCmd)

		assert.ErrorIs(t, err, outboxErr)
		assert.Nil(t, result)
		assert.Zero(t, metrics.GetCounter(observability.MetricTasksCreated, observability.T("priority", "HIGH")))
		uow.AssertExpectations(t)
	})
}
