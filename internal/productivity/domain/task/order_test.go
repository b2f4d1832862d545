package task_test

import (
	"testing"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
)

func TestCompare_PriorityBeforeDeadline(t *testing.T) {
	gen := task.NewSequenceGenerator(0)
	high := newTask(t, gen, "high", value_objects.PriorityHigh, 1, "30-12-2025")
	medium := newTask(t, gen, "medium", value_objects.PriorityMedium, 1, "01-01-2025")

	assert.Negative(t, task.Compare(high, medium))
	assert.Positive(t, task.Compare(medium, high))
}

func TestCompare_SamePriorityByDeadlineText(t *testing.T) {
	gen := task.NewSequenceGenerator(0)
	a := newTask(t, gen, "a", value_objects.PriorityLow, 1, "05-01-2025")
	b := newTask(t, gen, "b", value_objects.PriorityLow, 1, "28-12-2024")

	// "05-01-2025" < "28-12-2024" as text even though it is the later date.
	assert.Negative(t, task.Compare(a, b))
}

func TestCompareStable_FallsBackToSequence(t *testing.T) {
	gen := task.NewSequenceGenerator(0)
	first := newTask(t, gen, "first", value_objects.PriorityMedium, 1, "01-01-2025")
	second := newTask(t, gen, "second", value_objects.PriorityMedium, 1, "01-01-2025")

	assert.Equal(t, 0, task.Compare(first, second))
	assert.Negative(t, task.CompareStable(first, second))
	assert.Positive(t, task.CompareStable(second, first))
}

func TestSortForScheduling(t *testing.T) {
	gen := task.NewSequenceGenerator(0)
	low := newTask(t, gen, "low", value_objects.PriorityLow, 1, "01-01-2025")
	medLate := newTask(t, gen, "med-late", value_objects.PriorityMedium, 1, "20-01-2025")
	high := newTask(t, gen, "high", value_objects.PriorityHigh, 1, "31-12-2025")
	medEarly := newTask(t, gen, "med-early", value_objects.PriorityMedium, 1, "10-01-2025")

	tasks := []*task.Task{low, medLate, high, medEarly}
	task.SortForScheduling(tasks)

	assert.Equal(t, []*task.Task{high, medEarly, medLate, low}, tasks)
}

func TestFilterPending(t *testing.T) {
	gen := task.NewSequenceGenerator(0)
	a := newTask(t, gen, "a", value_objects.PriorityLow, 1, "01-01-2025")
	b := newTask(t, gen, "b", value_objects.PriorityLow, 1, "01-01-2025")
	_ = a.Complete()

	assert.Equal(t, []*task.Task{b}, task.FilterPending([]*task.Task{a, b}))
}
