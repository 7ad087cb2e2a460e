// Package indicator provides batch technical and statistical indicators over
// daily price/volume series.
//
// Every function is pure: it takes one or more []float64 series plus scalar
// parameters and returns new series of equal length, aligned by index with the
// input. Positions where an indicator has insufficient history carry
// math.NaN() — the warm-up prefix is never zero-filled, and a rolling window
// that covers any NaN input yields NaN.
package indicator

import "math"

// nanSlice returns a slice of n NaN values.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// rollingMean computes the trailing mean over window, inclusive of the
// current index. Windows that reach before the series start or cover a NaN
// yield NaN.
func rollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingStd computes the trailing sample standard deviation (n-1 divisor)
// over window, with the same NaN rules as rollingMean.
func rollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if !ok {
			continue
		}
		mean := sum / float64(window)
		var ss float64
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}
	return out
}

// PercentChange returns the day-over-day fractional change of a series.
// The first position (and any position whose predecessor is NaN or zero) is NaN.
func PercentChange(values []float64) []float64 {
	out := nanSlice(len(values))
	for i := 1; i < len(values); i++ {
		if math.IsNaN(values[i]) || math.IsNaN(values[i-1]) || values[i-1] == 0 {
			continue
		}
		out[i] = values[i]/values[i-1] - 1
	}
	return out
}
