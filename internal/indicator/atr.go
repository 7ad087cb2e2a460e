package indicator

import (
	"fmt"
	"math"
)

// TrueRange calculates the per-bar true range:
// max(high-low, |high-prevClose|, |low-prevClose|). The first bar has no
// previous close, so its true range degrades to high-low.
func TrueRange(high, low, close []float64) ([]float64, error) {
	if len(high) != len(low) || len(low) != len(close) {
		return nil, fmt.Errorf("true range input lengths differ: high=%d low=%d close=%d", len(high), len(low), len(close))
	}
	tr := make([]float64, len(high))
	for i := range high {
		tr[i] = high[i] - low[i]
		if i == 0 {
			continue
		}
		prevClose := close[i-1]
		tr[i] = math.Max(tr[i], math.Max(math.Abs(high[i]-prevClose), math.Abs(low[i]-prevClose)))
	}
	return tr, nil
}

// ATR calculates the average true range: the rolling mean of the true range
// over period. The first period-1 positions are NaN.
func ATR(high, low, close []float64, period int) ([]float64, error) {
	if period < 2 {
		return nil, fmt.Errorf("atr period must be >= 2, got %d", period)
	}
	tr, err := TrueRange(high, low, close)
	if err != nil {
		return nil, err
	}
	return rollingMean(tr, period), nil
}
