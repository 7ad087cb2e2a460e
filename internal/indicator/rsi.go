package indicator

import (
	"fmt"
	"math"
)

// RSI calculates the relative strength index using trailing rolling means of
// gains and losses over period. The first period positions are NaN (the
// delta series itself starts one bar late).
//
// Zero-denominator boundary, applied uniformly across the RSI family: a zero
// average gain pins the oscillator at 0 regardless of the average loss;
// otherwise a zero average loss pins it at 100. Infinities never escape.
func RSI(values []float64, period int) ([]float64, error) {
	if period < 2 {
		return nil, fmt.Errorf("rsi period must be >= 2, got %d", period)
	}
	gains, losses := deltas(values)
	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)
	out := nanSlice(len(values))
	for i := range out {
		out[i] = normalizeRS(avgGain[i], avgLoss[i])
	}
	return out, nil
}

// WilderRSI calculates the relative strength index with Wilder smoothing:
// average gain and loss follow the recursion avg += (x-avg)/period, seeded
// with the first observed delta. Output is NaN until period deltas have been
// observed. The zero boundary matches RSI.
func WilderRSI(values []float64, period int) ([]float64, error) {
	if period < 2 {
		return nil, fmt.Errorf("rsi period must be >= 2, got %d", period)
	}
	out := nanSlice(len(values))
	alpha := 1.0 / float64(period)
	var avgGain, avgLoss float64
	seen := 0
	for i := 1; i < len(values); i++ {
		if math.IsNaN(values[i]) || math.IsNaN(values[i-1]) {
			continue
		}
		d := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		if seen == 0 {
			avgGain, avgLoss = gain, loss
		} else {
			avgGain += alpha * (gain - avgGain)
			avgLoss += alpha * (loss - avgLoss)
		}
		seen++
		if seen >= period {
			out[i] = normalizeRS(avgGain, avgLoss)
		}
	}
	return out, nil
}

// deltas splits day-over-day changes into gain and loss series. Position 0
// has no predecessor and stays NaN in both.
func deltas(values []float64) (gains, losses []float64) {
	gains = nanSlice(len(values))
	losses = nanSlice(len(values))
	for i := 1; i < len(values); i++ {
		if math.IsNaN(values[i]) || math.IsNaN(values[i-1]) {
			continue
		}
		d := values[i] - values[i-1]
		if d > 0 {
			gains[i], losses[i] = d, 0
		} else {
			gains[i], losses[i] = 0, -d
		}
	}
	return gains, losses
}

// normalizeRS maps a smoothed gain/loss pair onto the 0-100 oscillator scale.
func normalizeRS(gain, loss float64) float64 {
	if math.IsNaN(gain) || math.IsNaN(loss) {
		return math.NaN()
	}
	if gain == 0 {
		return 0
	}
	if loss == 0 {
		return 100
	}
	rs := gain / loss
	return 100 - 100/(1+rs)
}
