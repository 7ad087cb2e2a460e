// Package bar
package bar

import (
	"errors"
	"fmt"
	"time"
)

// Bar is one trading day of OHLCV data for one instrument.
// Bars are immutable once ingested.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
	Symbol string    `json:"symbol"`
}

// IsBullish returns true if the bar closed above its open.
func (b *Bar) IsBullish() bool {
	return b.Close > b.Open
}

// Validate checks if a bar has valid data
func (b *Bar) Validate() error {
	if b.Date.IsZero() {
		return errors.New("bar date is zero")
	}
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return errors.New("bar prices must be positive")
	}
	if b.High < b.Low {
		return errors.New("bar high cannot be less than low")
	}
	if b.Open < b.Low || b.Open > b.High {
		return errors.New("bar open price must be between high and low")
	}
	if b.Close < b.Low || b.Close > b.High {
		return errors.New("bar close price must be between high and low")
	}
	if b.Volume < 0 {
		return errors.New("bar volume cannot be negative")
	}
	if b.Symbol == "" {
		return errors.New("bar symbol cannot be empty")
	}
	return nil
}

// ValidateSeries checks every bar and requires strictly ascending dates,
// one bar per date.
func ValidateSeries(bars []Bar) error {
	for i := range bars {
		if err := bars[i].Validate(); err != nil {
			return fmt.Errorf("invalid bar at index %d (%s): %w", i, bars[i].Date.Format("2006-01-02"), err)
		}
		if i > 0 && !bars[i].Date.After(bars[i-1].Date) {
			return fmt.Errorf("bar dates must be strictly ascending at index %d (%s)", i, bars[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Opens extracts the open price series.
func Opens(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].Open
	}
	return out
}

// Highs extracts the high price series.
func Highs(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].High
	}
	return out
}

// Lows extracts the low price series.
func Lows(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].Low
	}
	return out
}

// Closes extracts the close price series.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].Close
	}
	return out
}

// Volumes extracts the volume series.
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].Volume
	}
	return out
}
