package services

import (
	"container/heap"
	"slices"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

const (
	// DefaultBufferHours is reserved after every placed task.
	DefaultBufferHours = 0.25
	// DefaultMaxAttempts bounds the search for a slot to two weeks of day advances.
	DefaultMaxAttempts = 14
)

// EngineConfig contains configuration for the scheduling engine.
type EngineConfig struct {
	BufferHours float64
	MaxAttempts int
}

// DefaultEngineConfig returns the standard buffer and attempt bound.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		BufferHours: DefaultBufferHours,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// SchedulingEngine allocates tasks greedily into weekly availability.
//
// The engine is not safe for concurrent use and performs no I/O.
type SchedulingEngine struct {
	config   EngineConfig
	schedule *schedulingDomain.Schedule
}

// NewSchedulingEngine creates an engine with an empty schedule.
func NewSchedulingEngine(config EngineConfig) *SchedulingEngine {
	return &SchedulingEngine{
		config:   config,
		schedule: schedulingDomain.NewSchedule(),
	}
}

// Generate rebuilds the schedule from tasks, which must already be the
// pending set. It returns false as soon as one task cannot be placed within
// MaxAttempts; placements made before that point are kept.
//
// A single day cursor, slot cursor and used-hours counter are shared by all
// tasks and only ever move forward.
func (e *SchedulingEngine) Generate(tasks []*task.Task, weekday, weekend []schedulingDomain.TimeWindow) bool {
	e.schedule.Clear()

	weekday = slices.Clone(weekday)
	weekend = slices.Clone(weekend)
	queue := newTaskQueue(tasks)

	dayIndex := 0
	slotIndex := 0
	used := 0.0

	for queue.Len() > 0 {
		t := heap.Pop(queue).(queuedTask).task
		need := t.Duration().Hours() + e.config.BufferHours

		scheduled := false
		for attempts := 0; !scheduled && attempts < e.config.MaxAttempts; attempts++ {
			day := schedulingDomain.DayAt(dayIndex)
			windows := weekday
			if day.IsWeekend() {
				windows = weekend
			}

			if len(windows) == 0 || slotIndex >= len(windows) {
				dayIndex++
				slotIndex = 0
				used = 0
				continue
			}

			slot := windows[slotIndex]
			remaining := slot.DurationHours() - used

			if need <= remaining {
				e.schedule.Append(schedulingDomain.NewPlacement(
					t,
					day,
					slot.ClockAt(used),
					slot.ClockAt(used+t.Duration().Hours()),
				))
				used += need
				scheduled = true
				continue
			}

			slotIndex++
			used = 0
			if slotIndex >= len(windows) {
				dayIndex++
				slotIndex = 0
			}
		}

		if !scheduled {
			return false
		}
	}

	return true
}

// GenerateFor runs Generate against a WeeklyAvailability snapshot.
func (e *SchedulingEngine) GenerateFor(tasks []*task.Task, availability *schedulingDomain.WeeklyAvailability) bool {
	return e.Generate(tasks, availability.Weekday(), availability.Weekend())
}

// Schedule returns a copy of the current schedule.
func (e *SchedulingEngine) Schedule() *schedulingDomain.Schedule {
	return e.schedule.Copy()
}

// Load replaces the current schedule with a copy of s.
func (e *SchedulingEngine) Load(s *schedulingDomain.Schedule) {
	e.schedule = s.Copy()
}

// RemoveTask removes every placement of the task and reports how many were removed.
func (e *SchedulingEngine) RemoveTask(id task.ID) int {
	return e.schedule.RemoveTask(id)
}

// Clear resets the schedule to seven empty days.
func (e *SchedulingEngine) Clear() {
	e.schedule.Clear()
}

type queuedTask struct {
	task  *task.Task
	index int
}

// taskQueue is a min-heap in scheduling order. Input position breaks
// any tie left by the task sequence.
type taskQueue []queuedTask

func newTaskQueue(tasks []*task.Task) *taskQueue {
	q := make(taskQueue, 0, len(tasks))
	for i, t := range tasks {
		q = append(q, queuedTask{task: t, index: i})
	}
	heap.Init(&q)
	return &q
}

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if c := task.CompareStable(q[i].task, q[j].task); c != 0 {
		return c < 0
	}
	return q[i].index < q[j].index
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(queuedTask)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
