package task

import (
	"slices"
	"strconv"
)

// Compare orders tasks for scheduling: priority first, then deadline text.
// Ties are left to the caller.
func Compare(a, b *Task) int {
	if c := a.priority.Compare(b.priority); c != 0 {
		return c
	}
	return a.deadline.Compare(b.deadline)
}

// CompareStable is Compare with the creation sequence as the final tie-break.
func CompareStable(a, b *Task) int {
	if c := Compare(a, b); c != 0 {
		return c
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	default:
		return 0
	}
}

// SortForScheduling sorts tasks in place by CompareStable.
func SortForScheduling(tasks []*Task) {
	slices.SortStableFunc(tasks, CompareStable)
}

// FilterPending returns the pending tasks in their original order.
func FilterPending(tasks []*Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsPending() {
			out = append(out, t)
		}
	}
	return out
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
