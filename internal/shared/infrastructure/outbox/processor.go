package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/convert"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// ProcessorConfig tunes the relay.
type ProcessorConfig struct {
	BatchSize  int
	MaxBatches int // per Drain
	MaxRetries int // attempts before a message is dead-lettered

	RetryBackoffBase time.Duration
	RetryBackoffMax  time.Duration
}

// DefaultProcessorConfig returns the relay defaults.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		BatchSize:        100,
		MaxBatches:       10,
		MaxRetries:       5,
		RetryBackoffBase: time.Second,
		RetryBackoffMax:  time.Minute,
	}
}

// Stats accumulates what a Processor has done since it was built.
type Stats struct {
	Published       uint64
	Failed          uint64
	Dead            uint64
	LagSeconds      float64
	LastError       string
	LastErrorAt     *time.Time
	LastProcessedAt *time.Time
	OldestMessageAt *time.Time
}

// Processor relays outbox messages to a publisher. Commands that change
// state drain it once their transaction has committed.
type Processor struct {
	repo      Repository
	publisher eventbus.Publisher
	config    ProcessorConfig
	metrics   observability.Metrics
	logger    *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// NewProcessor creates a processor. A non-positive batch size takes the
// default.
func NewProcessor(repo Repository, publisher eventbus.Publisher, config ProcessorConfig, metrics observability.Metrics, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultProcessorConfig().BatchSize
	}
	return &Processor{
		repo:      repo,
		publisher: publisher,
		config:    config,
		metrics:   metrics,
		logger:    logger.With("component", "outbox"),
	}
}

// ProcessOnce attempts one batch of due messages and returns its size.
func (p *Processor) ProcessOnce(ctx context.Context) (int, error) {
	batch, err := p.repo.GetUnpublished(ctx, p.config.BatchSize)
	if err != nil {
		p.update(func(s *Stats) { s.noteError(err) })
		return 0, err
	}
	p.update(func(s *Stats) { s.noteBatch(batch) })

	for _, msg := range batch {
		if err := ctx.Err(); err != nil {
			return len(batch), err
		}
		p.deliver(ctx, msg)
	}
	return len(batch), nil
}

// Drain processes batches until one comes back empty or MaxBatches have run.
func (p *Processor) Drain(ctx context.Context) error {
	for range max(p.config.MaxBatches, 1) {
		n, err := p.ProcessOnce(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
	}

	s := p.Stats()
	p.logger.DebugContext(ctx, "outbox drained",
		"published", s.Published,
		"failed", s.Failed,
		"dead", s.Dead,
	)
	return nil
}

// Stats returns a snapshot of the counters.
func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *Processor) deliver(ctx context.Context, msg *Message) {
	tag := observability.T("routing_key", msg.RoutingKey)

	pubErr := p.publisher.Publish(ctx, msg.RoutingKey, msg.Payload)
	if pubErr == nil {
		if err := p.repo.MarkPublished(ctx, msg.ID); err != nil {
			p.logger.ErrorContext(ctx, "mark published", "id", msg.ID, "event_id", msg.EventID, "error", err)
			return
		}
		p.update(func(s *Stats) { s.Published++ })
		p.metrics.Counter(observability.MetricEventsPublished, 1, tag)
		return
	}

	p.logger.WarnContext(ctx, "publish failed",
		"id", msg.ID,
		"routing_key", msg.RoutingKey,
		"event_id", msg.EventID,
		"correlation_id", msg.CorrelationID(),
		"attempt", msg.RetryCount+1,
		"error", pubErr,
	)

	if p.exhausted(msg) {
		p.update(func(s *Stats) { s.Dead++; s.noteError(pubErr) })
		p.metrics.Counter(observability.MetricEventsDeadLettered, 1, tag)
		if err := p.repo.MarkDead(ctx, msg.ID, pubErr.Error()); err != nil {
			p.logger.ErrorContext(ctx, "mark dead", "id", msg.ID, "error", err)
		}
		return
	}

	p.update(func(s *Stats) { s.Failed++; s.noteError(pubErr) })
	p.metrics.Counter(observability.MetricEventsFailed, 1, tag)
	next := time.Now().Add(p.retryBackoff(msg.RetryCount + 1))
	if err := p.repo.MarkFailed(ctx, msg.ID, pubErr.Error(), next); err != nil {
		p.logger.ErrorContext(ctx, "mark failed", "id", msg.ID, "error", err)
	}
}

// exhausted reports whether the attempt that just failed was the last one.
func (p *Processor) exhausted(msg *Message) bool {
	return msg.RetryCount+1 >= p.config.MaxRetries
}

// retryBackoff doubles from RetryBackoffBase per attempt, capped at
// RetryBackoffMax.
func (p *Processor) retryBackoff(attempt int) time.Duration {
	base, ceiling := p.config.RetryBackoffBase, p.config.RetryBackoffMax
	if base <= 0 {
		base = time.Second
	}
	if ceiling <= 0 {
		ceiling = time.Minute
	}

	shift := convert.ToUint(attempt - 1)
	if shift > 30 {
		return ceiling
	}
	return min(base<<shift, ceiling)
}

func (p *Processor) update(fn func(*Stats)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.stats)
}

func (s *Stats) noteError(err error) {
	now := time.Now()
	s.LastError = err.Error()
	s.LastErrorAt = &now
}

func (s *Stats) noteBatch(batch []*Message) {
	now := time.Now()
	s.LastProcessedAt = &now
	s.OldestMessageAt = nil
	s.LagSeconds = 0
	for _, m := range batch {
		if s.OldestMessageAt == nil || m.CreatedAt.Before(*s.OldestMessageAt) {
			created := m.CreatedAt
			s.OldestMessageAt = &created
		}
	}
	if s.OldestMessageAt != nil {
		s.LagSeconds = now.Sub(*s.OldestMessageAt).Seconds()
	}
}
