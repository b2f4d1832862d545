package queries

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/stretchr/testify/mock"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id task.ID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindAll(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindPending(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id task.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTaskRepo) MaxSeq(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockAvailabilityRepo struct {
	mock.Mock
}

func (m *mockAvailabilityRepo) Load(ctx context.Context) (*domain.WeeklyAvailability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyAvailability), args.Error(1)
}

func (m *mockAvailabilityRepo) Replace(ctx context.Context, kind domain.AvailabilityKind, windows []domain.TimeWindow) error {
	return m.Called(ctx, kind, windows).Error(0)
}

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) Save(ctx context.Context, s *domain.Schedule) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockScheduleRepo) Load(ctx context.Context, tasks []*task.Task) (*domain.Schedule, error) {
	args := m.Called(ctx, tasks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *mockScheduleRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockRunRepo struct {
	mock.Mock
}

func (m *mockRunRepo) Record(ctx context.Context, run domain.ScheduleRun) error {
	return m.Called(ctx, run).Error(0)
}

func (m *mockRunRepo) Latest(ctx context.Context) (*domain.ScheduleRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleRun), args.Error(1)
}

func newTask(seq int, name string, p value_objects.Priority) *task.Task {
	t, err := task.NewTask(
		task.NewSequenceGenerator(seq-1),
		name, "",
		p,
		value_objects.MustNewDuration(1),
		value_objects.RehydrateDeadline("01-06-2025"),
	)
	if err != nil {
		panic(err)
	}
	return t
}
