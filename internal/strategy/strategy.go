package strategy

import (
	"fmt"

	"github.com/tuathan/stock-signals/internal/bar"
	"github.com/tuathan/stock-signals/internal/config"
	"github.com/tuathan/stock-signals/internal/signal"
)

// Engine is the interface for all signal engines. Scan runs the full
// pipeline over one instrument's bar series: indicators, raw flags, and
// deduplicated signal events.
type Engine interface {
	Name() string
	Scan(bars []bar.Bar) ([]signal.Event, error)
}

// New builds the engines selected by the config.
func New(cfg config.Config) ([]Engine, error) {
	engines := make([]Engine, 0, len(cfg.Strategies))

	for _, name := range cfg.Strategies {
		var (
			engine Engine
			err    error
		)

		switch name {
		case "macross":
			engine, err = NewMACross(cfg.MACross)
		case "rsmacd":
			engine, err = NewRSMACD(cfg.RSMACD)
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
		if err != nil {
			return nil, fmt.Errorf("building %s engine: %w", name, err)
		}

		engines = append(engines, engine)
	}

	return engines, nil
}
