package indicator

import (
	"fmt"
	"math"
)

// SMA calculates the simple moving average of a series over a trailing
// window, inclusive of the current position. The first window-1 positions
// are NaN.
func SMA(values []float64, window int) ([]float64, error) {
	if window < 2 {
		return nil, fmt.Errorf("sma window must be >= 2, got %d", window)
	}
	return rollingMean(values, window), nil
}

// EMA calculates the exponential moving average with smoothing factor
// 2/(span+1). The recursion is seeded with the first finite value and the
// output is defined from that position onward; accuracy stabilizes only
// after roughly span observations.
func EMA(values []float64, span int) ([]float64, error) {
	if span < 2 {
		return nil, fmt.Errorf("ema span must be >= 2, got %d", span)
	}
	out := nanSlice(len(values))
	alpha := 2.0 / float64(span+1)
	prev := 0.0
	seeded := false
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !seeded {
			prev = v
			seeded = true
		} else {
			prev = alpha*v + (1-alpha)*prev
		}
		out[i] = prev
	}
	return out, nil
}
