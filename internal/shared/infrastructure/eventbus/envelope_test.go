package eventbus_test

import (
	"testing"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEvent struct {
	domain.BaseEvent
	Name string `json:"name"`
}

func TestMarshalEnvelope_RoundTrip(t *testing.T) {
	event := &sampleEvent{
		BaseEvent: domain.NewBaseEvent("T009", "Task", "task.created"),
		Name:      "Write",
	}
	correlation := uuid.New()
	event.SetMetadata(domain.EventMetadata{CorrelationID: correlation})

	data, err := eventbus.MarshalEnvelope(event)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "causation_id")

	env, err := eventbus.DecodeEnvelope("ignored", data)
	require.NoError(t, err)

	assert.Equal(t, event.EventID(), env.EventID)
	assert.Equal(t, "T009", env.AggregateID)
	assert.Equal(t, "Task", env.AggregateType)
	assert.Equal(t, "task.created", env.RoutingKey)
	assert.True(t, event.OccurredAt().Equal(env.OccurredAt))
	assert.Equal(t, correlation.String(), env.Trace.CorrelationID)
	assert.Empty(t, env.Trace.CausationID)
	assert.JSONEq(t, `{"name":"Write"}`, string(env.Payload))
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := eventbus.DecodeEnvelope("task.deleted", []byte(`{"aggregate_id":"T001"}`))
	require.NoError(t, err)
	assert.Equal(t, "task.deleted", env.RoutingKey)
	assert.Equal(t, "T001", env.AggregateID)

	_, err = eventbus.DecodeEnvelope("task.deleted", []byte("not json"))
	assert.ErrorContains(t, err, "decode task.deleted envelope")
}
