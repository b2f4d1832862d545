package observability

import (
	"context"
	"log/slog"
	"time"
)

// TimeOperation starts timing operation and returns the function that ends
// it. Ending records MetricOperationDuration and MetricOperationTotal, plus
// MetricOperationErrors when err is non-nil, and logs the outcome: failures
// at error level, successes at debug. Either logger or metrics may be nil.
func TimeOperation(ctx context.Context, operation string, logger *slog.Logger, metrics Metrics, tags ...Tag) func(err error) time.Duration {
	start := time.Now()
	tags = append(tags[:len(tags):len(tags)], T("operation", operation))

	return func(err error) time.Duration {
		elapsed := time.Since(start)

		if metrics != nil {
			metrics.Timing(MetricOperationDuration, elapsed, tags...)
			metrics.Counter(MetricOperationTotal, 1, tags...)
			if err != nil {
				metrics.Counter(MetricOperationErrors, 1, tags...)
			}
		}

		if logger != nil {
			if err != nil {
				logger.ErrorContext(ctx, "operation failed",
					"operation", operation,
					"duration_ms", elapsed.Milliseconds(),
					"error", err,
				)
			} else {
				logger.DebugContext(ctx, "operation completed",
					"operation", operation,
					"duration_ms", elapsed.Milliseconds(),
				)
			}
		}
		return elapsed
	}
}
