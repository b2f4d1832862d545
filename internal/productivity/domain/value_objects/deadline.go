package value_objects

import (
	"errors"
	"strings"
	"time"
)

// DeadlineLayout is the textual form deadlines are entered and stored in.
const DeadlineLayout = "02-01-2006"

var (
	ErrInvalidDeadline = errors.New("deadline must be a date in DD-MM-YYYY form")
)

// Deadline is a calendar date kept in its raw DD-MM-YYYY form.
//
// Compare works on the raw text, so deadlines do not sort chronologically
// across months or years: "05-01-2025" sorts before "28-12-2024".
type Deadline struct {
	raw string
}

// NewDeadline validates and wraps a DD-MM-YYYY date.
func NewDeadline(s string) (Deadline, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DeadlineLayout, s); err != nil {
		return Deadline{}, ErrInvalidDeadline
	}
	return Deadline{raw: s}, nil
}

// RehydrateDeadline wraps a stored deadline without validation.
func RehydrateDeadline(raw string) Deadline {
	return Deadline{raw: raw}
}

// String returns the raw deadline text.
func (d Deadline) String() string {
	return d.raw
}

// Compare orders deadlines by their raw text.
func (d Deadline) Compare(other Deadline) int {
	return strings.Compare(d.raw, other.raw)
}

// Time parses the deadline as a date. ok is false for unparseable stored values.
func (d Deadline) Time() (t time.Time, ok bool) {
	t, err := time.Parse(DeadlineLayout, d.raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsOverdue reports whether the deadline day is strictly before now's day.
func (d Deadline) IsOverdue(now time.Time) bool {
	t, ok := d.Time()
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.Before(today)
}
