package value_objects

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidDuration = errors.New("duration must be a positive number of hours")
)

// minuteEpsilon absorbs float noise such as 0.7*60 = 41.99999 before truncating to minutes.
const minuteEpsilon = 1e-9

// Duration represents an estimated task duration in hours.
type Duration struct {
	hours float64
}

// NewDuration creates a new Duration value object.
func NewDuration(hours float64) (Duration, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{hours: hours}, nil
}

// MustNewDuration creates a Duration or panics on error.
func MustNewDuration(hours float64) Duration {
	d, err := NewDuration(hours)
	if err != nil {
		panic(err)
	}
	return d
}

// Hours returns the duration in hours.
func (d Duration) Hours() float64 {
	return d.hours
}

// Minutes returns the duration in whole minutes, truncated.
func (d Duration) Minutes() int {
	return HoursToMinutes(d.hours)
}

// Value returns the duration as a time.Duration with minute resolution.
func (d Duration) Value() time.Duration {
	return time.Duration(d.Minutes()) * time.Minute
}

// IsZero returns true for the zero value.
func (d Duration) IsZero() bool {
	return d.hours == 0
}

// String returns a human-readable representation.
func (d Duration) String() string {
	total := d.Minutes()
	hours := total / 60
	minutes := total % 60

	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

// HoursToMinutes converts fractional hours to whole minutes, truncating.
func HoursToMinutes(hours float64) int {
	return int(math.Floor(hours*60 + minuteEpsilon))
}
