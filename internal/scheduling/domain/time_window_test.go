package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		hours    float64
		expected error
	}{
		{"morning", "09:00", "12:30", 3.5, nil},
		{"single digit hour", "9:00", "10:15", 1.25, nil},
		{"late evening", "22:00", "23:59", 119.0 / 60.0, nil},
		{"inverted", "12:00", "09:00", 0, domain.ErrInvalidOrder},
		{"equal", "10:00", "10:00", 0, domain.ErrInvalidOrder},
		{"hour out of range", "25:00", "26:00", 0, domain.ErrInvalidRange},
		{"minute out of range", "09:60", "10:00", 0, domain.ErrInvalidRange},
		{"negative", "-1:00", "10:00", 0, domain.ErrInvalidRange},
		{"missing colon", "0900", "10:00", 0, domain.ErrInvalidFormat},
		{"too many parts", "09:00:00", "10:00", 0, domain.ErrInvalidFormat},
		{"not a number", "ab:00", "10:00", 0, domain.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := domain.NewTimeWindow(tt.start, tt.end)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.hours, w.DurationHours(), 1e-9)
		})
	}
}

func TestTimeWindow_Accessors(t *testing.T) {
	w := domain.MustNewTimeWindow("9:05", "17:30")

	assert.Equal(t, 545, w.StartMinute())
	assert.Equal(t, 1050, w.EndMinute())
	assert.Equal(t, "09:05", w.Start())
	assert.Equal(t, "17:30", w.End())
	assert.Equal(t, 505, w.DurationMinutes())
	assert.Equal(t, "09:05 - 17:30 (8.42 hours)", w.String())
}

func TestTimeWindow_ClockAt(t *testing.T) {
	w := domain.MustNewTimeWindow("09:00", "17:00")

	assert.Equal(t, "09:00", w.ClockAt(0))
	assert.Equal(t, "11:00", w.ClockAt(2))
	assert.Equal(t, "11:15", w.ClockAt(2.25))
	assert.Equal(t, "09:42", w.ClockAt(0.7))
	// Fractions of a minute are dropped.
	assert.Equal(t, "09:17", w.ClockAt(0.29))
}

func TestParseTimeWindow(t *testing.T) {
	w, err := domain.ParseTimeWindow("08:30-10:00")
	require.NoError(t, err)
	assert.Equal(t, 1.5, w.DurationHours())

	_, err = domain.ParseTimeWindow("08:30")
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	_, err = domain.ParseTimeWindow("10:00-08:30")
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}

func TestNewTimeWindowFromMinutes(t *testing.T) {
	w, err := domain.NewTimeWindowFromMinutes(60, 120)
	require.NoError(t, err)
	assert.Equal(t, "01:00", w.Start())

	_, err = domain.NewTimeWindowFromMinutes(0, 24*60)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = domain.NewTimeWindowFromMinutes(120, 60)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}
