// Package strategy
package strategy

import (
	"fmt"

	"github.com/tuathan/stock-signals/internal/bar"
	"github.com/tuathan/stock-signals/internal/config"
	"github.com/tuathan/stock-signals/internal/indicator"
	"github.com/tuathan/stock-signals/internal/signal"
)

// Reference moving-average windows carried on the frame alongside the
// configurable control MA.
const (
	rsmacdMA5Window  = 5
	rsmacdMA20Window = 20
	rsmacdMA60Window = 60
)

// Oscillator levels the turning-point signals cross.
const (
	rsmacdOversold   = 30
	rsmacdMidline    = 50
	rsmacdOverbought = 70
)

// RSMACD is the RSI-on-MACD oscillator engine: it applies the Wilder RSI
// transform to the MACD line's own day-over-day deltas, normalizing MACD
// into a 0-100 oscillator, and derives six turning-point signal classes from
// the oscillator's shape. A ratchet ATR trailing stop anchored on a control
// moving average rides along on the frame.
type RSMACD struct {
	fastPeriod      int
	slowPeriod      int
	signalPeriod    int
	rsiPeriod       int
	controlMAPeriod int
	atrPeriod       int
	atrMultiplier   float64
}

// RSMACDFrame is the bar series extended with the engine's indicator
// columns, aligned by index.
type RSMACDFrame struct {
	Bars []bar.Bar

	MA5  []float64
	MA20 []float64
	MA60 []float64

	ControlMA    []float64
	ATR          []float64
	TrailingStop []float64

	MACDLine      []float64
	MACDSignal    []float64
	MACDHistogram []float64
	RSMACD        []float64
}

// RSMACDFlags holds the six boolean signal columns. A single bar may carry
// multiple true flags.
type RSMACDFlags struct {
	GreenArrow    []bool
	GreenTriangle []bool
	GreenBall     []bool
	RedArrow      []bool
	RedTriangle   []bool
	RedBall       []bool
}

// NewRSMACD creates the engine, rejecting malformed periods.
func NewRSMACD(cfg config.RSMACDConfig) (*RSMACD, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RSMACD{
		fastPeriod:      cfg.FastPeriod,
		slowPeriod:      cfg.SlowPeriod,
		signalPeriod:    cfg.SignalPeriod,
		rsiPeriod:       cfg.RSIPeriod,
		controlMAPeriod: cfg.ControlMAPeriod,
		atrPeriod:       cfg.ATRPeriod,
		atrMultiplier:   cfg.ATRMultiplier,
	}, nil
}

// Name returns the name of the engine
func (s *RSMACD) Name() string { return "rsmacd" }

// ComputeIndicators adds the reference MAs, the control MA, ATR and its
// ratchet trailing stop, the MACD triple, and the RSMACD oscillator.
func (s *RSMACD) ComputeIndicators(bars []bar.Bar) (*RSMACDFrame, error) {
	closes := bar.Closes(bars)

	ma5, err := indicator.SMA(closes, rsmacdMA5Window)
	if err != nil {
		return nil, err
	}
	ma20, err := indicator.SMA(closes, rsmacdMA20Window)
	if err != nil {
		return nil, err
	}
	ma60, err := indicator.SMA(closes, rsmacdMA60Window)
	if err != nil {
		return nil, err
	}

	controlMA, err := indicator.SMA(closes, s.controlMAPeriod)
	if err != nil {
		return nil, err
	}
	atr, err := indicator.ATR(bar.Highs(bars), bar.Lows(bars), closes, s.atrPeriod)
	if err != nil {
		return nil, err
	}
	trailingStop, err := indicator.RatchetTrailingStop(controlMA, atr, s.atrMultiplier)
	if err != nil {
		return nil, err
	}

	macdLine, macdSignal, macdHistogram, err := indicator.MACD(closes, s.fastPeriod, s.slowPeriod, s.signalPeriod)
	if err != nil {
		return nil, err
	}

	// The RSI transform applied to the MACD line instead of price: the MACD
	// line's own deltas feed the Wilder-smoothed gain/loss ratio.
	rsmacd, err := indicator.WilderRSI(macdLine, s.rsiPeriod)
	if err != nil {
		return nil, err
	}

	return &RSMACDFrame{
		Bars:          bars,
		MA5:           ma5,
		MA20:          ma20,
		MA60:          ma60,
		ControlMA:     controlMA,
		ATR:           atr,
		TrailingStop:  trailingStop,
		MACDLine:      macdLine,
		MACDSignal:    macdSignal,
		MACDHistogram: macdHistogram,
		RSMACD:        rsmacd,
	}, nil
}

// GenerateSignals derives the six signal flags from the oscillator's shape,
// comparing each bar to the previous two. Predicates touching an undefined
// (NaN) oscillator value evaluate false.
func (s *RSMACD) GenerateSignals(f *RSMACDFrame) RSMACDFlags {
	return oscillatorFlags(f.RSMACD)
}

func oscillatorFlags(r []float64) RSMACDFlags {
	n := len(r)
	flags := RSMACDFlags{
		GreenArrow:    make([]bool, n),
		GreenTriangle: make([]bool, n),
		GreenBall:     make([]bool, n),
		RedArrow:      make([]bool, n),
		RedTriangle:   make([]bool, n),
		RedBall:       make([]bool, n),
	}

	for i := 1; i < n; i++ {
		turningUp := false
		turningDown := false
		if i >= 2 {
			turningUp = r[i] > r[i-1] && r[i-1] <= r[i-2]
			turningDown = r[i] < r[i-1] && r[i-1] >= r[i-2]
		}

		flags.GreenArrow[i] = turningUp
		flags.GreenTriangle[i] = r[i] > rsmacdOversold && r[i-1] <= rsmacdOversold
		flags.GreenBall[i] = r[i] > rsmacdMidline && r[i-1] <= rsmacdMidline && turningUp

		flags.RedArrow[i] = turningDown
		flags.RedTriangle[i] = r[i] < rsmacdOverbought && r[i-1] >= rsmacdOverbought
		flags.RedBall[i] = r[i] < rsmacdMidline && r[i-1] >= rsmacdMidline && turningDown
	}

	return flags
}

// Events materializes deduplicated signal events from the flags. Label order
// when multiple flags fire on one bar: green_arrow, green_triangle,
// green_ball, red_arrow, red_triangle, red_ball.
func (s *RSMACD) Events(f *RSMACDFrame, flags RSMACDFlags) ([]signal.Event, error) {
	labels, err := signal.Labels(len(f.Bars), []signal.Flag{
		{Name: "green_arrow", Values: flags.GreenArrow},
		{Name: "green_triangle", Values: flags.GreenTriangle},
		{Name: "green_ball", Values: flags.GreenBall},
		{Name: "red_arrow", Values: flags.RedArrow},
		{Name: "red_triangle", Values: flags.RedTriangle},
		{Name: "red_ball", Values: flags.RedBall},
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
				"close":         f.Bars[i].Close,
				"rsmacd":        f.RSMACD[i],
				"trailing_stop": f.TrailingStop[i],
			},
		})
	}
	return signal.Deduplicate(events), nil
}

// Scan runs the full pipeline over one instrument's bar series.
func (s *RSMACD) Scan(bars []bar.Bar) ([]signal.Event, error) {
	if err := bar.ValidateSeries(bars); err != nil {
		return nil, fmt.Errorf("rsmacd: %w", err)
	}
	frame, err := s.ComputeIndicators(bars)
	if err != nil {
		return nil, err
	}
	return s.Events(frame, s.GenerateSignals(frame))
}
