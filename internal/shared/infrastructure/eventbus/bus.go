package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Consumer reacts to events with the routing keys it declares.
type Consumer interface {
	RoutingKeys() []string
	Handle(ctx context.Context, env *Envelope) error
}

// InProcessEventBus hands events to consumers in the same process,
// synchronously and in registration order. It is always part of the
// publishing fan-out, with or without a broker.
type InProcessEventBus struct {
	mu     sync.RWMutex
	routes map[string][]Consumer
	logger *slog.Logger
}

// NewInProcessEventBus creates a bus with no consumers.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{
		routes: make(map[string][]Consumer),
		logger: logger.With("component", "eventbus"),
	}
}

// Subscribe routes every key c declares to c.
func (b *InProcessEventBus) Subscribe(c Consumer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, key := range c.RoutingKeys() {
		b.routes[key] = append(b.routes[key], c)
		b.logger.Debug("consumer subscribed", "routing_key", key)
	}
}

// Subscribers returns the consumers of routingKey.
func (b *InProcessEventBus) Subscribers(routingKey string) []Consumer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.routes[routingKey])
}

// RoutingKeys lists the keys with at least one consumer, sorted.
func (b *InProcessEventBus) RoutingKeys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.routes))
	for k := range b.routes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ConsumerCount counts subscriptions. A consumer of two keys counts twice.
func (b *InProcessEventBus) ConsumerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, cs := range b.routes {
		n += len(cs)
	}
	return n
}

// Publish implements Publisher. An undecodable payload is logged and
// dropped. Consumer failures are returned so the outbox retries the message;
// consumers must tolerate redelivery.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	env, err := DecodeEnvelope(routingKey, payload)
	if err != nil {
		b.logger.ErrorContext(ctx, "dropping undecodable event", "error", err)
		return nil
	}

	start := time.Now()
	if err := b.Deliver(ctx, env); err != nil {
		b.logger.WarnContext(ctx, "event delivery failed",
			"routing_key", env.RoutingKey,
			"event_id", env.EventID,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return fmt.Errorf("deliver %s: %w", env.RoutingKey, err)
	}
	return nil
}

// Deliver runs every consumer of env's routing key, even after a failure,
// and returns their errors joined.
func (b *InProcessEventBus) Deliver(ctx context.Context, env *Envelope) error {
	var errs []error
	for _, c := range b.Subscribers(env.RoutingKey) {
		if err := c.Handle(ctx, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Publisher.
func (b *InProcessEventBus) Close() error { return nil }
