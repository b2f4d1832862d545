package queries

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

// WindowDTO is a time window in "HH:MM" form.
type WindowDTO struct {
	Start string
	End   string
	Hours float64
}

// AvailabilityDTO describes the stored weekly availability.
type AvailabilityDTO struct {
	Weekday          []WindowDTO
	Weekend          []WindowDTO
	IsConfigured     bool
	TotalWeeklyHours float64
}

// GetAvailabilityHandler returns the stored availability.
type GetAvailabilityHandler struct {
	availabilityRepo domain.AvailabilityRepository
}

// NewGetAvailabilityHandler creates a new GetAvailabilityHandler.
func NewGetAvailabilityHandler(availabilityRepo domain.AvailabilityRepository) *GetAvailabilityHandler {
	return &GetAvailabilityHandler{availabilityRepo: availabilityRepo}
}

// Handle executes the query.
func (h *GetAvailabilityHandler) Handle(ctx context.Context) (*AvailabilityDTO, error) {
	a, err := h.availabilityRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &AvailabilityDTO{
		Weekday:          toWindowDTOs(a.Weekday()),
		Weekend:          toWindowDTOs(a.Weekend()),
		IsConfigured:     a.IsConfigured(),
		TotalWeeklyHours: a.TotalWeeklyHours(),
	}, nil
}

func toWindowDTOs(windows []domain.TimeWindow) []WindowDTO {
	out := make([]WindowDTO, 0, len(windows))
	for _, w := range windows {
		out = append(out, WindowDTO{Start: w.Start(), End: w.End(), Hours: w.DurationHours()})
	}
	return out
}
