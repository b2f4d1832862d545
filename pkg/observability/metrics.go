package observability

import "time"

// Metrics records counters, gauges and distributions. Names are dotted
// (tempo.tasks.created); sinks translate them as they need.
type Metrics interface {
	Counter(name string, value int64, tags ...Tag)
	Gauge(name string, value float64, tags ...Tag)
	Histogram(name string, value float64, tags ...Tag)
	Timing(name string, duration time.Duration, tags ...Tag)
}

// Tag is a metric label.
type Tag struct {
	Key   string
	Value string
}

// T creates a Tag.
func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// NoopMetrics discards everything. Handlers fall back to it when built
// without a sink.
type NoopMetrics struct{}

func (NoopMetrics) Counter(string, int64, ...Tag) {}

func (NoopMetrics) Gauge(string, float64, ...Tag) {}

func (NoopMetrics) Histogram(string, float64, ...Tag) {}

func (NoopMetrics) Timing(string, time.Duration, ...Tag) {}

// Metric names recorded by tempo.
const (
	// Operations timed with TimeOperation
	MetricOperationTotal    = "tempo.operation.total"
	MetricOperationDuration = "tempo.operation.duration"
	MetricOperationErrors   = "tempo.operation.errors"

	// Tasks
	MetricTasksCreated   = "tempo.tasks.created"
	MetricTasksCompleted = "tempo.tasks.completed"
	MetricTasksDeleted   = "tempo.tasks.deleted"

	// Schedule
	MetricScheduleRuns       = "tempo.schedule.runs"
	MetricPlacementsCreated  = "tempo.schedule.placements"
	MetricTasksUnplaced      = "tempo.schedule.unplaced"
	MetricPlacementsRemoved  = "tempo.schedule.placements_removed"
	MetricWeeklyAvailability = "tempo.availability.weekly_hours"

	// Events
	MetricEventsPublished     = "tempo.events.published"
	MetricEventsFailed        = "tempo.events.failed"
	MetricEventsDeadLettered  = "tempo.events.dead_lettered"
	MetricBreakerStateChanges = "tempo.breaker.state_changes"
)
