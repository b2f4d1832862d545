package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// ConfigureAvailabilityCommand replaces one availability sequence.
type ConfigureAvailabilityCommand struct {
	Kind    string
	Windows []string // "HH:MM-HH:MM"; empty clears the sequence
}

// ConfigureAvailabilityResult contains the stored availability after the update.
type ConfigureAvailabilityResult struct {
	Kind         domain.AvailabilityKind
	Windows      []domain.TimeWindow
	Availability *domain.WeeklyAvailability
}

// ConfigureAvailabilityHandler handles the ConfigureAvailabilityCommand.
type ConfigureAvailabilityHandler struct {
	availabilityRepo domain.AvailabilityRepository
	uow              sharedApplication.UnitOfWork
	metrics          observability.Metrics
}

// NewConfigureAvailabilityHandler creates a new ConfigureAvailabilityHandler.
func NewConfigureAvailabilityHandler(
	availabilityRepo domain.AvailabilityRepository,
	uow sharedApplication.UnitOfWork,
	metrics observability.Metrics,
) *ConfigureAvailabilityHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ConfigureAvailabilityHandler{
		availabilityRepo: availabilityRepo,
		uow:              uow,
		metrics:          metrics,
	}
}

// Handle validates every window before anything is written.
func (h *ConfigureAvailabilityHandler) Handle(ctx context.Context, cmd ConfigureAvailabilityCommand) (*ConfigureAvailabilityResult, error) {
	kind, err := domain.ParseAvailabilityKind(cmd.Kind)
	if err != nil {
		return nil, err
	}

	windows := make([]domain.TimeWindow, 0, len(cmd.Windows))
	for i, raw := range cmd.Windows {
		w, err := domain.ParseTimeWindow(raw)
		if err != nil {
			return nil, fmt.Errorf("window %d %q: %w", i+1, raw, err)
		}
		windows = append(windows, w)
	}

	var availability *domain.WeeklyAvailability
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.availabilityRepo.Replace(txCtx, kind, windows); err != nil {
			return err
		}
		loaded, err := h.availabilityRepo.Load(txCtx)
		if err != nil {
			return err
		}
		availability = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.metrics.Gauge(observability.MetricWeeklyAvailability, availability.TotalWeeklyHours())

	return &ConfigureAvailabilityResult{
		Kind:         kind,
		Windows:      windows,
		Availability: availability,
	}, nil
}
