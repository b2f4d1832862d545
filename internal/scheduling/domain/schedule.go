package domain

import (
	"slices"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
)

// Schedule maps every day of the week to its placements in insertion order.
// All seven buckets always exist.
type Schedule struct {
	days [DaysPerWeek][]*Placement
}

// NewSchedule creates a schedule with seven empty days.
func NewSchedule() *Schedule {
	s := &Schedule{}
	s.Clear()
	return s
}

// Append adds a placement to the end of its day.
func (s *Schedule) Append(p *Placement) {
	s.days[p.Day()] = append(s.days[p.Day()], p)
}

// Placements returns a copy of one day's placements.
func (s *Schedule) Placements(day Day) []*Placement {
	if !day.IsValid() {
		return []*Placement{}
	}
	return slices.Clone(s.days[day])
}

// All returns every placement, Monday first.
func (s *Schedule) All() []*Placement {
	out := make([]*Placement, 0, s.Len())
	for _, day := range Days() {
		out = append(out, s.days[day]...)
	}
	return out
}

// Len returns the number of placements across the week.
func (s *Schedule) Len() int {
	n := 0
	for _, bucket := range s.days {
		n += len(bucket)
	}
	return n
}

// IsEmpty reports whether no day has a placement.
func (s *Schedule) IsEmpty() bool {
	return s.Len() == 0
}

// Copy returns an independent schedule. Placements are immutable and shared.
func (s *Schedule) Copy() *Schedule {
	c := &Schedule{}
	for i, bucket := range s.days {
		c.days[i] = slices.Clone(bucket)
		if c.days[i] == nil {
			c.days[i] = []*Placement{}
		}
	}
	return c
}

// RemoveTask drops every placement of the task and returns how many went.
func (s *Schedule) RemoveTask(id task.ID) int {
	removed := 0
	for i, bucket := range s.days {
		kept := bucket[:0:0]
		for _, p := range bucket {
			if p.TaskID() == id {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		s.days[i] = kept
	}
	return removed
}

// Clear resets the schedule to seven empty days.
func (s *Schedule) Clear() {
	for i := range s.days {
		s.days[i] = []*Placement{}
	}
}

// PlacedTaskIDs returns the set of tasks appearing anywhere in the schedule.
func (s *Schedule) PlacedTaskIDs() map[task.ID]struct{} {
	ids := make(map[task.ID]struct{})
	for _, bucket := range s.days {
		for _, p := range bucket {
			ids[p.TaskID()] = struct{}{}
		}
	}
	return ids
}

// Unplaced returns the tasks from candidates that have no placement, in their given order.
func (s *Schedule) Unplaced(candidates []*task.Task) []*task.Task {
	placed := s.PlacedTaskIDs()
	out := make([]*task.Task, 0)
	for _, t := range candidates {
		if _, ok := placed[t.ID()]; !ok {
			out = append(out, t)
		}
	}
	return out
}
