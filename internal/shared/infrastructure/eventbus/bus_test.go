package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConsumer struct {
	keys []string
	err  error
	got  []*eventbus.Envelope
}

func (c *recordingConsumer) RoutingKeys() []string { return c.keys }

func (c *recordingConsumer) Handle(_ context.Context, env *eventbus.Envelope) error {
	c.got = append(c.got, env)
	return c.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInProcessEventBus_Subscribe(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(quietLogger())
	assert.Zero(t, bus.ConsumerCount())

	bus.Subscribe(&recordingConsumer{keys: []string{"task.deleted", "task.completed"}})
	bus.Subscribe(&recordingConsumer{keys: []string{"task.completed"}})

	assert.Equal(t, []string{"task.completed", "task.deleted"}, bus.RoutingKeys())
	assert.Len(t, bus.Subscribers("task.completed"), 2)
	assert.Len(t, bus.Subscribers("task.deleted"), 1)
	assert.Empty(t, bus.Subscribers("task.created"))
	assert.Equal(t, 3, bus.ConsumerCount())
}

func TestInProcessEventBus_Publish(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(quietLogger())
	completed := &recordingConsumer{keys: []string{"task.completed"}}
	created := &recordingConsumer{keys: []string{"task.created"}}
	bus.Subscribe(completed)
	bus.Subscribe(created)

	sent := eventbus.Envelope{
		EventID:       uuid.New(),
		AggregateID:   "T004",
		AggregateType: "Task",
		RoutingKey:    "task.completed",
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(sent)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), "task.completed", payload))

	require.Len(t, completed.got, 1)
	assert.Equal(t, sent.EventID, completed.got[0].EventID)
	assert.Equal(t, "T004", completed.got[0].AggregateID)
	assert.Empty(t, created.got)
}

func TestInProcessEventBus_PublishReturnsConsumerFailure(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(quietLogger())
	errLocked := errors.New("schedule locked")
	failing := &recordingConsumer{keys: []string{"task.completed"}, err: errLocked}
	bus.Subscribe(failing)

	err := bus.Publish(context.Background(), "task.completed", []byte(`{}`))

	assert.ErrorIs(t, err, errLocked)
	assert.Len(t, failing.got, 1)
}

func TestInProcessEventBus_PublishDropsUndecodablePayload(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(quietLogger())
	consumer := &recordingConsumer{keys: []string{"task.completed"}}
	bus.Subscribe(consumer)

	assert.NoError(t, bus.Publish(context.Background(), "task.completed", []byte("not json")))
	assert.Empty(t, consumer.got)
}

func TestInProcessEventBus_DeliverJoinsErrors(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(quietLogger())
	errOne, errTwo := errors.New("one"), errors.New("two")
	first := &recordingConsumer{keys: []string{"task.deleted"}, err: errOne}
	healthy := &recordingConsumer{keys: []string{"task.deleted"}}
	last := &recordingConsumer{keys: []string{"task.deleted"}, err: errTwo}
	bus.Subscribe(first)
	bus.Subscribe(healthy)
	bus.Subscribe(last)

	err := bus.Deliver(context.Background(), &eventbus.Envelope{RoutingKey: "task.deleted"})

	assert.ErrorIs(t, err, errOne)
	assert.ErrorIs(t, err, errTwo)
	assert.Len(t, healthy.got, 1)
	assert.Len(t, last.got, 1)
}

func TestInProcessEventBus_DeliverWithoutConsumers(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(nil)

	assert.NoError(t, bus.Deliver(context.Background(), &eventbus.Envelope{RoutingKey: "task.created"}))
	assert.NoError(t, bus.Close())
}
