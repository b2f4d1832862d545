package subscribers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
)

// TaskUnscheduler removes a task from the persisted schedule.
type TaskUnscheduler interface {
	Handle(ctx context.Context, cmd commands.RemoveTaskFromScheduleCommand) (int, error)
}

// ScheduleCleanupSubscriber drops placements of tasks that were completed or
// deleted so the stored schedule never shows finished work.
type ScheduleCleanupSubscriber struct {
	unscheduler TaskUnscheduler
	logger      *slog.Logger
}

// NewScheduleCleanupSubscriber creates a new ScheduleCleanupSubscriber.
func NewScheduleCleanupSubscriber(unscheduler TaskUnscheduler, logger *slog.Logger) *ScheduleCleanupSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleCleanupSubscriber{
		unscheduler: unscheduler,
		logger:      logger,
	}
}

// RoutingKeys implements eventbus.Consumer.
func (s *ScheduleCleanupSubscriber) RoutingKeys() []string {
	return []string{
		task.RoutingKeyCompleted,
		task.RoutingKeyDeleted,
	}
}

// Handle unschedules the task named by the event's aggregate id.
func (s *ScheduleCleanupSubscriber) Handle(ctx context.Context, event *eventbus.Envelope) error {
	id, err := task.ParseID(event.AggregateID)
	if err != nil {
		return fmt.Errorf("event %s: %w", event.EventID, err)
	}

	removed, err := s.unscheduler.Handle(ctx, commands.RemoveTaskFromScheduleCommand{TaskID: id})
	if err != nil {
		return fmt.Errorf("unschedule task %s: %w", id, err)
	}

	if removed > 0 {
		s.logger.Info("removed task from schedule",
			"task_id", id,
			"placements", removed,
			"routing_key", event.RoutingKey,
		)
	}
	return nil
}
