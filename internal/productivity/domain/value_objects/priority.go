package value_objects

import (
	"errors"
	"strings"
)

// Priority represents a task's scheduling tier. Lower values are scheduled first.
type Priority int

const (
	PriorityHigh Priority = iota + 1
	PriorityMedium
	PriorityLow
)

var (
	ErrInvalidPriority = errors.New("invalid priority value")
)

var priorityNames = map[Priority]string{
	PriorityHigh:   "HIGH",
	PriorityMedium: "MEDIUM",
	PriorityLow:    "LOW",
}

var priorityValues = map[string]Priority{
	"HIGH":   PriorityHigh,
	"MEDIUM": PriorityMedium,
	"LOW":    PriorityLow,
}

// ParsePriority creates a Priority from a string, ignoring case.
func ParsePriority(s string) (Priority, error) {
	p, ok := priorityValues[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidPriority
	}
	return p, nil
}

// Priorities returns all tiers in scheduling order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValid returns true if the priority is a valid value.
func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// Compare orders HIGH before MEDIUM before LOW.
func (p Priority) Compare(other Priority) int {
	switch {
	case p < other:
		return -1
	case p > other:
		return 1
	default:
		return 0
	}
}
