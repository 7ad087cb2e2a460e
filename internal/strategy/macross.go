// Package strategy
package strategy

import (
	"fmt"
	"math"

	"github.com/tuathan/stock-signals/internal/bar"
	"github.com/tuathan/stock-signals/internal/config"
	"github.com/tuathan/stock-signals/internal/indicator"
	"github.com/tuathan/stock-signals/internal/signal"
)

// Flatness test for the slow moving average: every one of the last
// maFlatPeriods day-over-day percentage changes must stay below
// maFlatThreshold in absolute value.
const (
	maFlatThreshold = 0.003
	maFlatPeriods   = 3
)

// bullishRunLength is the number of consecutive bullish bars (close > open)
// the reverse-buy signal requires, ending at the signal bar.
const bullishRunLength = 2

// MACross is the MA-crossover + volume-confirmation engine. It derives three
// signal classes from a fast/slow close SMA pair, with an optional volume
// confirmation gate (fast volume SMA above slow volume SMA) on the buy-side
// signals. Sell signals are never gated: a stop-loss must not be suppressed
// by thin volume.
type MACross struct {
	fastWindow    int
	slowWindow    int
	volFastWindow int
	volSlowWindow int

	volumeConfirmation bool
}

// MACrossFrame is the bar series extended with the engine's indicator
// columns, aligned by index.
type MACrossFrame struct {
	Bars       []bar.Bar
	FastSMA    []float64
	SlowSMA    []float64
	VolFastSMA []float64
	VolSlowSMA []float64
}

// MACrossFlags holds the three boolean signal columns. A single bar may
// carry multiple true flags.
type MACrossFlags struct {
	ReverseBuy []bool
	Buy        []bool
	Sell       []bool
}

// NewMACross creates the engine, rejecting malformed windows.
func NewMACross(cfg config.MACrossConfig) (*MACross, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &MACross{
		fastWindow:         cfg.FastWindow,
		slowWindow:         cfg.SlowWindow,
		volFastWindow:      cfg.VolFastWindow,
		volSlowWindow:      cfg.VolSlowWindow,
		volumeConfirmation: cfg.VolumeConfirmation,
	}, nil
}

// Name returns the name of the engine
func (s *MACross) Name() string { return "macross" }

// ComputeIndicators adds the fast/slow close SMAs and fast/slow volume SMAs.
func (s *MACross) ComputeIndicators(bars []bar.Bar) (*MACrossFrame, error) {
	closes := bar.Closes(bars)
	volumes := bar.Volumes(bars)

	fastSMA, err := indicator.SMA(closes, s.fastWindow)
	if err != nil {
		return nil, err
	}
	slowSMA, err := indicator.SMA(closes, s.slowWindow)
	if err != nil {
		return nil, err
	}
	volFastSMA, err := indicator.SMA(volumes, s.volFastWindow)
	if err != nil {
		return nil, err
	}
	volSlowSMA, err := indicator.SMA(volumes, s.volSlowWindow)
	if err != nil {
		return nil, err
	}

	return &MACrossFrame{
		Bars:       bars,
		FastSMA:    fastSMA,
		SlowSMA:    slowSMA,
		VolFastSMA: volFastSMA,
		VolSlowSMA: volSlowSMA,
	}, nil
}

// GenerateSignals derives the three signal flags per bar:
//
//   - reverse-buy: close below the slow SMA, slow SMA flat or rising, fast
//     SMA rising, and at least bullishRunLength consecutive bullish bars
//     ending here.
//   - buy: slow SMA flat or rising, fast SMA above slow SMA, close above the
//     fast SMA.
//   - sell: fast SMA falling and close below it.
//
// With volume confirmation enabled, reverse-buy and buy additionally require
// the fast volume SMA above the slow one. Predicates touching an undefined
// (NaN) indicator evaluate false.
func (s *MACross) GenerateSignals(f *MACrossFrame) MACrossFlags {
	n := len(f.Bars)
	flags := MACrossFlags{
		ReverseBuy: make([]bool, n),
		Buy:        make([]bool, n),
		Sell:       make([]bool, n),
	}

	slowFlat := maFlat(f.SlowSMA)
	slowUp := maUp(f.SlowSMA)
	fastUp := maUp(f.FastSMA)
	fastDown := maDown(f.FastSMA)
	bullishRun := consecutiveBullish(f.Bars, bullishRunLength)

	for i := 0; i < n; i++ {
		c := f.Bars[i].Close
		volConfirm := f.VolFastSMA[i] > f.VolSlowSMA[i]

		reverseBuy := c < f.SlowSMA[i] &&
			(slowFlat[i] || slowUp[i]) &&
			fastUp[i] &&
			bullishRun[i]

		buy := (slowFlat[i] || slowUp[i]) &&
			f.FastSMA[i] > f.SlowSMA[i] &&
			c > f.FastSMA[i]

		if s.volumeConfirmation {
			reverseBuy = reverseBuy && volConfirm
			buy = buy && volConfirm
		}

		flags.ReverseBuy[i] = reverseBuy
		flags.Buy[i] = buy
		flags.Sell[i] = fastDown[i] && c < f.FastSMA[i]
	}

	return flags
}

// Events materializes deduplicated signal events from the flags. Label order
// when multiple flags fire on one bar: reverse_buy, buy, sell.
func (s *MACross) Events(f *MACrossFrame, flags MACrossFlags) ([]signal.Event, error) {
	labels, err := signal.Labels(len(f.Bars), []signal.Flag{
		{Name: "reverse_buy", Values: flags.ReverseBuy},
		{Name: "buy", Values: flags.Buy},
		{Name: "sell", Values: flags.Sell},
	})
	if err != nil {
		return nil, err
	}

	var events []signal.Event
	for i, label := range labels {
		if label == "" {
			continue
		}
		events = append(events, signal.Event{
			Index: i,
			Date:  f.Bars[i].Date,
			Label: label,
			Values: map[string]float64{
				"close":    f.Bars[i].Close,
				"fast_sma": f.FastSMA[i],
				"slow_sma": f.SlowSMA[i],
			},
		})
	}
	return signal.Deduplicate(events), nil
}

// Scan runs the full pipeline over one instrument's bar series.
func (s *MACross) Scan(bars []bar.Bar) ([]signal.Event, error) {
	if err := bar.ValidateSeries(bars); err != nil {
		return nil, fmt.Errorf("macross: %w", err)
	}
	frame, err := s.ComputeIndicators(bars)
	if err != nil {
		return nil, err
	}
	return s.Events(frame, s.GenerateSignals(frame))
}

// maFlat reports, per position, whether the last maFlatPeriods day-over-day
// percentage changes of the series are all defined and below maFlatThreshold
// in absolute value.
func maFlat(series []float64) []bool {
	change := indicator.PercentChange(series)
	out := make([]bool, len(series))
	for i := maFlatPeriods - 1; i < len(series); i++ {
		flat := true
		for j := i - maFlatPeriods + 1; j <= i; j++ {
			if !(math.Abs(change[j]) < maFlatThreshold) {
				flat = false
				break
			}
		}
		out[i] = flat
	}
	return out
}

// maUp reports whether the series rose from the previous position.
func maUp(series []float64) []bool {
	out := make([]bool, len(series))
	for i := 1; i < len(series); i++ {
		out[i] = series[i] > series[i-1]
	}
	return out
}

// maDown reports whether the series fell from the previous position.
func maDown(series []float64) []bool {
	out := make([]bool, len(series))
	for i := 1; i < len(series); i++ {
		out[i] = series[i] < series[i-1]
	}
	return out
}

// consecutiveBullish reports whether run bars ending at each position all
// closed above their open.
func consecutiveBullish(bars []bar.Bar, run int) []bool {
	out := make([]bool, len(bars))
	for i := run - 1; i < len(bars); i++ {
		ok := true
		for j := i - run + 1; j <= i; j++ {
			if !bars[j].IsBullish() {
				ok = false
				break
			}
		}
		out[i] = ok
	}
	return out
}
