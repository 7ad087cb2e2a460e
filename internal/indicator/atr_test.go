package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrueRange(t *testing.T) {
	high := []float64{10, 12, 11}
	low := []float64{8, 9, 10}
	close := []float64{9, 11, 10.5}

	tr, err := TrueRange(high, low, close)
	require.NoError(t, err)

	// First bar has no previous close: degrades to high-low.
	assert.InDelta(t, 2, tr[0], 1e-12)
	// max(12-9, |12-9|, |9-9|) = 3
	assert.InDelta(t, 3, tr[1], 1e-12)
	// max(11-10, |11-11|, |10-11|) = 1
	assert.InDelta(t, 1, tr[2], 1e-12)
}

func TestTrueRangeGapDominates(t *testing.T) {
	// An overnight gap makes |high-prevClose| the largest term.
	high := []float64{10, 15}
	low := []float64{8, 14}
	close := []float64{9, 14.5}

	tr, err := TrueRange(high, low, close)
	require.NoError(t, err)
	assert.InDelta(t, 6, tr[1], 1e-12)
}

func TestTrueRangeRejectsLengthMismatch(t *testing.T) {
	_, err := TrueRange([]float64{1, 2}, []float64{1}, []float64{1, 2})
	assert.Error(t, err)
}

func TestATR(t *testing.T) {
	high := []float64{10, 12, 11}
	low := []float64{8, 9, 10}
	close := []float64{9, 11, 10.5}

	atr, err := ATR(high, low, close, 2)
	require.NoError(t, err)
	assertSeries(t, []float64{math.NaN(), 2.5, 2}, atr)
}

func TestATRRejectsInvalidPeriod(t *testing.T) {
	_, err := ATR([]float64{1}, []float64{1}, []float64{1}, 1)
	assert.Error(t, err)
}
