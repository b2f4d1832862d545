package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeOperation(t *testing.T) {
	m := NewInMemoryMetrics()

	done := TimeOperation(context.Background(), "task.create", nil, m)
	elapsed := done(nil)

	tag := T("operation", "task.create")
	assert.GreaterOrEqual(t, elapsed.Nanoseconds(), int64(0))
	assert.Equal(t, int64(1), m.GetCounter(MetricOperationTotal, tag))
	assert.Zero(t, m.GetCounter(MetricOperationErrors, tag))
	assert.Len(t, m.GetTimings(MetricOperationDuration, tag), 1)
}

func TestTimeOperation_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelDebug, Output: &buf})
	m := NewInMemoryMetrics()
	ctx := WithCorrelationID(context.Background(), "run-7")

	done := TimeOperation(ctx, "schedule.generate", logger, m, T("driver", "sqlite"))
	done(errors.New("schedule locked"))

	assert.Equal(t, int64(1), m.GetCounter(MetricOperationErrors, T("operation", "schedule.generate"), T("driver", "sqlite")))
	out := buf.String()
	assert.Contains(t, out, "operation failed")
	assert.Contains(t, out, "schedule locked")
	assert.Contains(t, out, "correlation_id=run-7")
}

func TestTimeOperation_DoesNotAliasCallerTags(t *testing.T) {
	tags := make([]Tag, 1, 4)
	tags[0] = T("driver", "sqlite")

	TimeOperation(context.Background(), "a", nil, nil, tags...)
	TimeOperation(context.Background(), "b", nil, nil, tags...)

	assert.Len(t, tags, 1)
	assert.Equal(t, "driver", tags[0].Key)
}
