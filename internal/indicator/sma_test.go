package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertSeries compares two series element-wise, treating NaN as equal to NaN.
func assertSeries(t *testing.T, expected, actual []float64) {
	t.Helper()
	require.Equal(t, len(expected), len(actual), "series length mismatch")
	for i := range expected {
		if math.IsNaN(expected[i]) {
			assert.True(t, math.IsNaN(actual[i]), "expected NaN at index %d, got %v", i, actual[i])
		} else {
			assert.InDelta(t, expected[i], actual[i], 1e-9, "mismatch at index %d", i)
		}
	}
}

func TestSMA(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		window   int
		expected []float64
	}{
		{
			name:     "Basic trailing mean",
			values:   []float64{1, 2, 3, 4, 5},
			window:   3,
			expected: []float64{math.NaN(), math.NaN(), 2, 3, 4},
		},
		{
			name:     "Window of 2",
			values:   []float64{10, 20, 30},
			window:   2,
			expected: []float64{math.NaN(), 15, 25},
		},
		{
			name:     "NaN input propagates through its windows",
			values:   []float64{1, math.NaN(), 3, 4, 5},
			window:   2,
			expected: []float64{math.NaN(), math.NaN(), math.NaN(), 3.5, 4.5},
		},
		{
			name:     "Insufficient history stays undefined",
			values:   []float64{1, 2},
			window:   5,
			expected: []float64{math.NaN(), math.NaN()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SMA(tt.values, tt.window)
			require.NoError(t, err)
			assertSeries(t, tt.expected, result)
		})
	}
}

func TestSMAWindowExactMean(t *testing.T) {
	// From position window-1 onward the output exactly equals the arithmetic
	// mean of the trailing window inputs.
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	window := 4
	result, err := SMA(values, window)
	require.NoError(t, err)
	for i := 0; i < window-1; i++ {
		assert.True(t, math.IsNaN(result[i]), "expected warm-up NaN at index %d", i)
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		assert.InDelta(t, sum/float64(window), result[i], 1e-12)
	}
}

func TestSMARejectsInvalidWindow(t *testing.T) {
	for _, window := range []int{-1, 0, 1} {
		_, err := SMA([]float64{1, 2, 3}, window)
		assert.Error(t, err, "window %d should be rejected", window)
	}
}

func TestEMA(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		span     int
		expected []float64
	}{
		{
			name:     "Seeded with first value",
			values:   []float64{2, 4},
			span:     3,
			expected: []float64{2, 3},
		},
		{
			name:     "Constant series",
			values:   []float64{100, 100, 100, 100},
			span:     3,
			expected: []float64{100, 100, 100, 100},
		},
		{
			name:     "Leading NaN skipped, recursion starts at first finite value",
			values:   []float64{math.NaN(), 2, 4},
			span:     3,
			expected: []float64{math.NaN(), 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EMA(tt.values, tt.span)
			require.NoError(t, err)
			assertSeries(t, tt.expected, result)
		})
	}
}

func TestEMARejectsInvalidSpan(t *testing.T) {
	_, err := EMA([]float64{1, 2, 3}, 1)
	assert.Error(t, err)
}
