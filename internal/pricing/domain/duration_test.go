package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeDurationToYears(t *testing.T) {
	tests := map[string]struct {
		value  float64
		factor float64
		want   float64
	}{
		"calendar days": {value: 365, factor: 365, want: 1},
		"trading days":  {value: 126, factor: 252, want: 0.5},
		"months":        {value: 18, factor: 12, want: 1.5},
		"years":         {value: 2, factor: 1, want: 2},
		"zero value":    {value: 0, factor: 365, want: 0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := NewTimeDuration(tc.value, tc.factor)
			require.NoError(t, err)
			got, err := d.ToYears()
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestTimeDurationInvalidFactor(t *testing.T) {
	for _, factor := range []float64{0, -1, -365} {
		_, err := NewTimeDuration(30, factor)
		assert.ErrorIs(t, err, ErrInvalidDuration)

		d := TimeDuration{Value: 30, Factor: factor}
		_, err = d.ToYears()
		assert.ErrorIs(t, err, ErrInvalidDuration)
	}
}
