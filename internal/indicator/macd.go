package indicator

import "fmt"

// MACD calculates the moving average convergence divergence triple: the
// difference of a fast and slow EMA of the series (macd line), an EMA of the
// macd line (signal line), and their difference (histogram).
func MACD(values []float64, fast, slow, signal int) (macdLine, signalLine, histogram []float64, err error) {
	if fast < 2 || slow < 2 || signal < 2 {
		return nil, nil, nil, fmt.Errorf("macd periods must be >= 2, got fast=%d slow=%d signal=%d", fast, slow, signal)
	}
	if fast >= slow {
		return nil, nil, nil, fmt.Errorf("macd fast period must be less than slow period, got fast=%d slow=%d", fast, slow)
	}
	emaFast, err := EMA(values, fast)
	if err != nil {
		return nil, nil, nil, err
	}
	emaSlow, err := EMA(values, slow)
	if err != nil {
		return nil, nil, nil, err
	}
	macdLine = make([]float64, len(values))
	for i := range macdLine {
		macdLine[i] = emaFast[i] - emaSlow[i]
	}
	signalLine, err = EMA(macdLine, signal)
	if err != nil {
		return nil, nil, nil, err
	}
	histogram = make([]float64, len(values))
	for i := range histogram {
		histogram[i] = macdLine[i] - signalLine[i]
	}
	return macdLine, signalLine, histogram, nil
}

// BollingerBands calculates the rolling mean of a series plus/minus numStd
// rolling sample standard deviations.
func BollingerBands(values []float64, window int, numStd float64) (upper, middle, lower []float64, err error) {
	if window < 2 {
		return nil, nil, nil, fmt.Errorf("bollinger window must be >= 2, got %d", window)
	}
	if numStd <= 0 {
		return nil, nil, nil, fmt.Errorf("bollinger std multiplier must be positive, got %v", numStd)
	}
	middle = rollingMean(values, window)
	std := rollingStd(values, window)
	upper = make([]float64, len(values))
	lower = make([]float64, len(values))
	for i := range values {
		upper[i] = middle[i] + std[i]*numStd
		lower[i] = middle[i] - std[i]*numStd
	}
	return upper, middle, lower, nil
}
