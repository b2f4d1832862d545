package subscribers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUnscheduler struct {
	mock.Mock
}

func (m *mockUnscheduler) Handle(ctx context.Context, cmd commands.RemoveTaskFromScheduleCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func event(routingKey, aggregateID string) *eventbus.Envelope {
	return &eventbus.Envelope{
		EventID:       uuid.New(),
		AggregateID:   aggregateID,
		AggregateType: task.AggregateType,
		RoutingKey:    routingKey,
	}
}

func TestScheduleCleanupSubscriber_RoutingKeys(t *testing.T) {
	s := NewScheduleCleanupSubscriber(new(mockUnscheduler), quietLogger())

	assert.ElementsMatch(t, []string{"task.completed", "task.deleted"}, s.RoutingKeys())
}

func TestScheduleCleanupSubscriber_Handle(t *testing.T) {
	t.Run("unschedules completed and deleted tasks", func(t *testing.T) {
		for _, key := range []string{task.RoutingKeyCompleted, task.RoutingKeyDeleted} {
			unscheduler := new(mockUnscheduler)
			s := NewScheduleCleanupSubscriber(unscheduler, quietLogger())
			unscheduler.On("Handle", mock.Anything, commands.RemoveTaskFromScheduleCommand{TaskID: "T004"}).Return(2, nil)

			require.NoError(t, s.Handle(context.Background(), event(key, "T004")))
			unscheduler.AssertExpectations(t)
		}
	})

	t.Run("rejects malformed aggregate id", func(t *testing.T) {
		unscheduler := new(mockUnscheduler)
		s := NewScheduleCleanupSubscriber(unscheduler, quietLogger())

		err := s.Handle(context.Background(), event(task.RoutingKeyDeleted, "not-a-task"))

		assert.ErrorIs(t, err, task.ErrInvalidID)
		unscheduler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("wraps unscheduler errors", func(t *testing.T) {
		unscheduler := new(mockUnscheduler)
		s := NewScheduleCleanupSubscriber(unscheduler, quietLogger())
		lockErr := errors.New("lock busy")
		unscheduler.On("Handle", mock.Anything, mock.Anything).Return(0, lockErr)

		err := s.Handle(context.Background(), event(task.RoutingKeyCompleted, "T001"))

		assert.ErrorIs(t, err, lockErr)
	})
}
