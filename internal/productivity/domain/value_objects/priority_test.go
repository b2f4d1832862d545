package value_objects_test

import (
	"testing"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected value_objects.Priority
		wantErr  bool
	}{
		{"high", "HIGH", value_objects.PriorityHigh, false},
		{"medium", "MEDIUM", value_objects.PriorityMedium, false},
		{"low", "LOW", value_objects.PriorityLow, false},
		{"case insensitive", "high", value_objects.PriorityHigh, false},
		{"padded", " Medium ", value_objects.PriorityMedium, false},
		{"invalid", "urgent", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := value_objects.ParsePriority(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, value_objects.ErrInvalidPriority)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "HIGH", value_objects.PriorityHigh.String())
	assert.Equal(t, "MEDIUM", value_objects.PriorityMedium.String())
	assert.Equal(t, "LOW", value_objects.PriorityLow.String())
	assert.Equal(t, "UNKNOWN", value_objects.Priority(99).String())
}

func TestPriority_Compare(t *testing.T) {
	assert.Equal(t, -1, value_objects.PriorityHigh.Compare(value_objects.PriorityMedium))
	assert.Equal(t, -1, value_objects.PriorityMedium.Compare(value_objects.PriorityLow))
	assert.Equal(t, 1, value_objects.PriorityLow.Compare(value_objects.PriorityHigh))
	assert.Equal(t, 0, value_objects.PriorityMedium.Compare(value_objects.PriorityMedium))
}

func TestPriority_IsValid(t *testing.T) {
	for _, p := range value_objects.Priorities() {
		assert.True(t, p.IsValid(), p.String())
	}
	assert.False(t, value_objects.Priority(0).IsValid())
}
