package indicator

import (
	"errors"
	"fmt"
	"math"
)

// tradingDaysPerYear is the annualization base for daily series.
const tradingDaysPerYear = 252

// Volatility calculates the annualized rolling volatility: the rolling sample
// standard deviation of day-over-day percentage returns, scaled by sqrt(252).
func Volatility(values []float64, window int) ([]float64, error) {
	if window < 2 {
		return nil, fmt.Errorf("volatility window must be >= 2, got %d", window)
	}
	std := rollingStd(PercentChange(values), window)
	factor := math.Sqrt(tradingDaysPerYear)
	for i := range std {
		std[i] *= factor
	}
	return std, nil
}

// Correlation calculates the rolling Pearson correlation of two series.
// Windows with zero variance on either side yield NaN.
func Correlation(a, b []float64, window int) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("correlation input lengths differ: %d vs %d", len(a), len(b))
	}
	if window < 2 {
		return nil, fmt.Errorf("correlation window must be >= 2, got %d", window)
	}
	out := nanSlice(len(a))
	for i := window - 1; i < len(a); i++ {
		var sumA, sumB float64
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(a[j]) || math.IsNaN(b[j]) {
				ok = false
				break
			}
			sumA += a[j]
			sumB += b[j]
		}
		if !ok {
			continue
		}
		meanA := sumA / float64(window)
		meanB := sumB / float64(window)
		var cov, varA, varB float64
		for j := i - window + 1; j <= i; j++ {
			da := a[j] - meanA
			db := b[j] - meanB
			cov += da * db
			varA += da * da
			varB += db * db
		}
		if varA == 0 || varB == 0 {
			continue
		}
		out[i] = cov / math.Sqrt(varA*varB)
	}
	return out, nil
}

// SharpeRatio calculates the annualized Sharpe ratio of a return series: the
// mean excess return over its sample standard deviation, scaled by sqrt(252).
// NaN positions (e.g. the leading percentage-change gap) are skipped. A zero
// standard deviation has no defined ratio and is reported as an error rather
// than an infinity.
func SharpeRatio(returns []float64, riskFreeRate float64) (float64, error) {
	var sum float64
	n := 0
	for _, r := range returns {
		if math.IsNaN(r) {
			continue
		}
		sum += r - riskFreeRate
		n++
	}
	if n < 2 {
		return 0, errors.New("sharpe ratio needs at least 2 returns")
	}
	mean := sum / float64(n)
	var ss float64
	for _, r := range returns {
		if math.IsNaN(r) {
			continue
		}
		d := (r - riskFreeRate) - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(n-1))
	if std == 0 {
		return 0, errors.New("sharpe ratio undefined: zero standard deviation of excess returns")
	}
	return mean / std * math.Sqrt(tradingDaysPerYear), nil
}

// MaxDrawdown calculates the drawdown series (value-runningMax)/runningMax,
// expressed as a non-positive fraction, and returns the deepest drawdown with
// its position alongside the full series.
func MaxDrawdown(values []float64) (maxDD float64, maxDDIndex int, drawdown []float64, err error) {
	drawdown = nanSlice(len(values))
	runningMax := math.NaN()
	maxDD = math.NaN()
	maxDDIndex = -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(runningMax) || v > runningMax {
			runningMax = v
		}
		drawdown[i] = (v - runningMax) / runningMax
		if math.IsNaN(maxDD) || drawdown[i] < maxDD {
			maxDD = drawdown[i]
			maxDDIndex = i
		}
	}
	if maxDDIndex < 0 {
		return 0, -1, nil, errors.New("max drawdown needs at least 1 value")
	}
	return maxDD, maxDDIndex, drawdown, nil
}
