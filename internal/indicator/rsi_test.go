package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSI(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		period   int
		expected []float64
	}{
		{
			name:     "All gains clamp to 100",
			values:   []float64{10, 11, 12, 13},
			period:   2,
			expected: []float64{math.NaN(), math.NaN(), 100, 100},
		},
		{
			name:     "All losses clamp to 0",
			values:   []float64{13, 12, 11, 10},
			period:   2,
			expected: []float64{math.NaN(), math.NaN(), 0, 0},
		},
		{
			name:     "Flat series has zero average gain",
			values:   []float64{5, 5, 5, 5},
			period:   2,
			expected: []float64{math.NaN(), math.NaN(), 0, 0},
		},
		{
			name:     "Alternating gains and losses balance at 50",
			values:   []float64{10, 11, 10, 11},
			period:   2,
			expected: []float64{math.NaN(), math.NaN(), 50, 50},
		},
		{
			name:     "Gains twice the losses",
			values:   []float64{10, 12, 11, 13},
			period:   2,
			expected: []float64{math.NaN(), math.NaN(), 100.0 / 1.5, 100.0 / 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RSI(tt.values, tt.period)
			require.NoError(t, err)
			assertSeries(t, tt.expected, result)
		})
	}
}

func TestRSIWarmupLength(t *testing.T) {
	// The delta series starts one bar late, so the first defined output sits
	// at index period, not period-1.
	values := []float64{10, 11, 12, 13, 14, 15, 16}
	period := 5
	result, err := RSI(values, period)
	require.NoError(t, err)
	for i := 0; i < period; i++ {
		assert.True(t, math.IsNaN(result[i]), "expected NaN at index %d", i)
	}
	assert.InDelta(t, 100, result[period], 1e-9)
}

func TestRSIRejectsInvalidPeriod(t *testing.T) {
	_, err := RSI([]float64{1, 2, 3}, 1)
	assert.Error(t, err)
}

func TestWilderRSI(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		period   int
		expected []float64
	}{
		{
			name:     "Strictly increasing input is pinned at 100",
			values:   []float64{1, 2, 3, 4, 5, 6, 7},
			period:   3,
			expected: []float64{math.NaN(), math.NaN(), math.NaN(), 100, 100, 100, 100},
		},
		{
			name:     "Strictly decreasing input is pinned at 0",
			values:   []float64{7, 6, 5, 4, 3, 2, 1},
			period:   3,
			expected: []float64{math.NaN(), math.NaN(), math.NaN(), 0, 0, 0, 0},
		},
		{
			name:     "Alternating input",
			values:   []float64{10, 11, 10, 11, 10},
			period:   2,
			expected: []float64{math.NaN(), math.NaN(), 50, 75, 37.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := WilderRSI(tt.values, tt.period)
			require.NoError(t, err)
			assertSeries(t, tt.expected, result)
		})
	}
}

func TestWilderRSISkipsLeadingNaN(t *testing.T) {
	// A NaN prefix (e.g. an indicator warm-up) delays the first observed
	// delta; validity still requires period deltas.
	values := []float64{math.NaN(), math.NaN(), 1, 2, 3, 4, 5}
	result, err := WilderRSI(values, 2)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.True(t, math.IsNaN(result[i]), "expected NaN at index %d", i)
	}
	assert.InDelta(t, 100, result[4], 1e-9)
	assert.InDelta(t, 100, result[6], 1e-9)
}
