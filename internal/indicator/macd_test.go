package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACDConstantSeries(t *testing.T) {
	values := []float64{100, 100, 100, 100, 100, 100}
	macdLine, signalLine, histogram, err := MACD(values, 3, 6, 3)
	require.NoError(t, err)
	for i := range values {
		assert.InDelta(t, 0, macdLine[i], 1e-12)
		assert.InDelta(t, 0, signalLine[i], 1e-12)
		assert.InDelta(t, 0, histogram[i], 1e-12)
	}
}

func TestMACDLinearRamp(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4}
	macdLine, signalLine, histogram, err := MACD(values, 3, 5, 3)
	require.NoError(t, err)

	// Fast EMA (alpha 1/2) minus slow EMA (alpha 1/3), both seeded at the
	// first value, then the signal EMA of that difference.
	expectedMACD := []float64{0, 0.166667, 0.361111, 0.532407, 0.667438}
	expectedSignal := []float64{0, 0.083333, 0.222222, 0.377315, 0.522377}
	for i := range values {
		assert.InDelta(t, expectedMACD[i], macdLine[i], 1e-5, "macd at index %d", i)
		assert.InDelta(t, expectedSignal[i], signalLine[i], 1e-5, "signal at index %d", i)
		assert.InDelta(t, macdLine[i]-signalLine[i], histogram[i], 1e-12, "histogram at index %d", i)
	}

	// The macd line of a rising ramp climbs toward its asymptote.
	for i := 1; i < len(macdLine); i++ {
		assert.Greater(t, macdLine[i], macdLine[i-1])
	}
}

func TestMACDRejectsInvalidPeriods(t *testing.T) {
	values := []float64{1, 2, 3}

	_, _, _, err := MACD(values, 1, 5, 3)
	assert.Error(t, err)

	_, _, _, err = MACD(values, 5, 5, 3)
	assert.Error(t, err, "fast period must be less than slow period")

	_, _, _, err = MACD(values, 3, 5, 0)
	assert.Error(t, err)
}

func TestBollingerBands(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	upper, middle, lower, err := BollingerBands(values, 3, 2)
	require.NoError(t, err)

	// Sample std of any 3 consecutive integers is 1.
	assertSeries(t, []float64{math.NaN(), math.NaN(), 2, 3, 4}, middle)
	assertSeries(t, []float64{math.NaN(), math.NaN(), 4, 5, 6}, upper)
	assertSeries(t, []float64{math.NaN(), math.NaN(), 0, 1, 2}, lower)
}

func TestBollingerBandsRejectsInvalidParams(t *testing.T) {
	_, _, _, err := BollingerBands([]float64{1, 2, 3}, 1, 2)
	assert.Error(t, err)

	_, _, _, err = BollingerBands([]float64{1, 2, 3}, 3, 0)
	assert.Error(t, err)
}
