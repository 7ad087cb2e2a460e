package indicator

import (
	"fmt"
	"math"
)

// RatchetTrailingStop calculates a trailing stop that only moves up while the
// anchor price holds above it. Per bar the candidate stop is
// anchor - atr*multiplier; the stop ratchets to max(previous stop, candidate)
// and resets down to the candidate when the anchor drops through the previous
// stop (a stop-out). Positions where the candidate is undefined stay NaN.
//
// The recurrence depends on the previously computed value, so it runs as a
// single forward pass in strict index order.
func RatchetTrailingStop(anchor, atr []float64, multiplier float64) ([]float64, error) {
	if len(anchor) != len(atr) {
		return nil, fmt.Errorf("trailing stop input lengths differ: anchor=%d atr=%d", len(anchor), len(atr))
	}
	if multiplier <= 0 {
		return nil, fmt.Errorf("trailing stop multiplier must be positive, got %v", multiplier)
	}
	stop := nanSlice(len(anchor))
	for i := range anchor {
		candidate := anchor[i] - atr[i]*multiplier
		if math.IsNaN(candidate) {
			continue
		}
		switch {
		case i == 0 || math.IsNaN(stop[i-1]):
			stop[i] = candidate
		case anchor[i] < stop[i-1]:
			// Stop-out: abandon the ratchet and re-anchor.
			stop[i] = candidate
		default:
			stop[i] = math.Max(stop[i-1], candidate)
		}
	}
	return stop, nil
}
