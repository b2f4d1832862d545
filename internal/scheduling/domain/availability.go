package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrInvalidAvailabilityKind = errors.New("availability kind must be weekday or weekend")

// AvailabilityKind selects one of the two window sequences.
type AvailabilityKind string

const (
	KindWeekday AvailabilityKind = "weekday"
	KindWeekend AvailabilityKind = "weekend"
)

// ParseAvailabilityKind parses "weekday" or "weekend", ignoring case.
func ParseAvailabilityKind(s string) (AvailabilityKind, error) {
	switch AvailabilityKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindWeekday:
		return KindWeekday, nil
	case KindWeekend:
		return KindWeekend, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAvailabilityKind, s)
	}
}

// WeeklyAvailability holds the ordered windows for weekdays and for weekend days.
// Sequences are copied on the way in and on the way out.
type WeeklyAvailability struct {
	weekday []TimeWindow
	weekend []TimeWindow
}

// NewWeeklyAvailability creates availability from the two window lists.
func NewWeeklyAvailability(weekday, weekend []TimeWindow) *WeeklyAvailability {
	return &WeeklyAvailability{
		weekday: slices.Clone(weekday),
		weekend: slices.Clone(weekend),
	}
}

// Weekday returns a copy of the weekday windows.
func (a *WeeklyAvailability) Weekday() []TimeWindow { return slices.Clone(a.weekday) }

// Weekend returns a copy of the weekend windows.
func (a *WeeklyAvailability) Weekend() []TimeWindow { return slices.Clone(a.weekend) }

// Windows returns a copy of the sequence for kind.
func (a *WeeklyAvailability) Windows(kind AvailabilityKind) []TimeWindow {
	if kind == KindWeekend {
		return a.Weekend()
	}
	return a.Weekday()
}

// Replace swaps one sequence wholesale.
func (a *WeeklyAvailability) Replace(kind AvailabilityKind, windows []TimeWindow) {
	switch kind {
	case KindWeekend:
		a.weekend = slices.Clone(windows)
	default:
		a.weekday = slices.Clone(windows)
	}
}

// WindowsFor returns the sequence that applies on day.
func (a *WeeklyAvailability) WindowsFor(day Day) []TimeWindow {
	if day.IsWeekend() {
		return a.Weekend()
	}
	return a.Weekday()
}

// IsConfigured reports whether either sequence has a window.
func (a *WeeklyAvailability) IsConfigured() bool {
	return len(a.weekday) > 0 || len(a.weekend) > 0
}

// TotalWeeklyHours is the weekday sum times five plus the weekend sum times two.
func (a *WeeklyAvailability) TotalWeeklyHours() float64 {
	return sumHours(a.weekday)*5 + sumHours(a.weekend)*2
}

func sumHours(windows []TimeWindow) float64 {
	var total float64
	for _, w := range windows {
		total += w.DurationHours()
	}
	return total
}
