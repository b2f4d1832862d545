package eventbus

import (
	"context"
	"errors"
)

// FanOutPublisher publishes every message to each of its targets in order.
// All targets are attempted; their errors are joined.
type FanOutPublisher struct {
	targets []Publisher
}

// NewFanOutPublisher creates a publisher over targets. Nil targets are skipped.
func NewFanOutPublisher(targets ...Publisher) *FanOutPublisher {
	out := make([]Publisher, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			out = append(out, t)
		}
	}
	return &FanOutPublisher{targets: out}
}

// Publish sends the message to every target.
func (p *FanOutPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var errs []error
	for _, t := range p.targets {
		if err := t.Publish(ctx, routingKey, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every target.
func (p *FanOutPublisher) Close() error {
	var errs []error
	for _, t := range p.targets {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
