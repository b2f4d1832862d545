package task

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// ID identifies a task. IDs are assigned in creation order and never reused.
type ID string

func (id ID) String() string { return string(id) }

// IDGenerator hands out task identifiers.
type IDGenerator interface {
	// Next returns a fresh id and the sequence number it encodes.
	Next() (ID, int)
}

// SequenceGenerator produces ids T001, T002, ... from an atomic counter.
type SequenceGenerator struct {
	last atomic.Int64
}

// NewSequenceGenerator creates a generator whose first id follows last.
func NewSequenceGenerator(last int) *SequenceGenerator {
	g := &SequenceGenerator{}
	g.last.Store(int64(last))
	return g
}

// Next returns the next id.
func (g *SequenceGenerator) Next() (ID, int) {
	seq := int(g.last.Add(1))
	return FormatID(seq), seq
}

// Reset sets the counter so the next id follows last.
func (g *SequenceGenerator) Reset(last int) {
	g.last.Store(int64(last))
}

// FormatID renders a sequence number as a task id.
func FormatID(seq int) ID {
	return ID(fmt.Sprintf("T%03d", seq))
}

// ParseID validates user input and normalises it, so "t3" is T003.
func ParseID(s string) (ID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "T") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n <= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return FormatID(n), nil
}
