package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
)

var (
	ErrInvalidFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidRange  = errors.New("invalid time values")
	ErrInvalidOrder  = errors.New("end time must be after start time")
)

const minutesPerDay = 24 * 60

// TimeWindow is a half-open interval [start, end) within a single day,
// stored as minutes since midnight.
type TimeWindow struct {
	start int
	end   int
}

// NewTimeWindow builds a window from two "HH:MM" strings.
func NewTimeWindow(start, end string) (TimeWindow, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeWindow{}, err
	}
	return NewTimeWindowFromMinutes(s, e)
}

// NewTimeWindowFromMinutes builds a window from minute-of-day offsets.
func NewTimeWindowFromMinutes(start, end int) (TimeWindow, error) {
	if start < 0 || start >= minutesPerDay || end < 0 || end >= minutesPerDay {
		return TimeWindow{}, ErrInvalidRange
	}
	if end <= start {
		return TimeWindow{}, ErrInvalidOrder
	}
	return TimeWindow{start: start, end: end}, nil
}

// MustNewTimeWindow is NewTimeWindow for literals known to be valid.
func MustNewTimeWindow(start, end string) TimeWindow {
	w, err := NewTimeWindow(start, end)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseTimeWindow parses the "HH:MM-HH:MM" form used on the command line.
func ParseTimeWindow(s string) (TimeWindow, error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return TimeWindow{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return NewTimeWindow(start, end)
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Getters
func (w TimeWindow) StartMinute() int { return w.start }
func (w TimeWindow) EndMinute() int   { return w.end }
func (w TimeWindow) Start() string    { return FormatClock(w.start) }
func (w TimeWindow) End() string      { return FormatClock(w.end) }

// DurationMinutes returns the window length in minutes.
func (w TimeWindow) DurationMinutes() int {
	return w.end - w.start
}

// DurationHours returns the window length in hours.
func (w TimeWindow) DurationHours() float64 {
	return float64(w.end-w.start) / 60.0
}

// ClockAt returns the wall-clock time offsetHours after the window start.
// Fractions of a minute are truncated.
func (w TimeWindow) ClockAt(offsetHours float64) string {
	return FormatClock(w.start + value_objects.HoursToMinutes(offsetHours))
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s - %s (%.2f hours)", w.Start(), w.End(), w.DurationHours())
}
