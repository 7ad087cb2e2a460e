// Package scan
package scan

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/tuathan/stock-signals/internal/config"
	"github.com/tuathan/stock-signals/internal/db"
	"github.com/tuathan/stock-signals/internal/signal"
	"github.com/tuathan/stock-signals/internal/strategy"
	"github.com/tuathan/stock-signals/internal/utils"
)

// Result is the deduplicated signal event list produced by one engine over
// one instrument.
type Result struct {
	Symbol   string
	Strategy string
	Events   []signal.Event
}

// Run loads the full bar history for every configured symbol (all stored
// symbols when the config lists none) and runs every configured engine over
// it, returning one Result per symbol/engine pair.
func Run(ctx context.Context, cfg config.Config, storage db.Storage) ([]Result, error) {
	engines, err := strategy.New(cfg)
	if err != nil {
		return nil, err
	}

	symbols := cfg.Symbols
	if len(symbols) == 0 {
		symbols, err = storage.Symbols(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan: listing symbols: %w", err)
		}
	}

	var results []Result
	for _, symbol := range symbols {
		bars, err := storage.GetBars(ctx, symbol, time.Time{}, time.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("scan: loading bars for %s: %w", symbol, err)
		}
		if len(bars) == 0 {
			utils.GetLogger().Printf("Scan | [%s] No bars stored, skipping", symbol)
			continue
		}

		for _, engine := range engines {
			events, err := engine.Scan(bars)
			if err != nil {
				return nil, fmt.Errorf("scan: %s on %s: %w", engine.Name(), symbol, err)
			}
			utils.GetLogger().Printf("Scan | [%s %s] %d bars -> %d signal events",
				symbol, engine.Name(), len(bars), len(events))
			results = append(results, Result{Symbol: symbol, Strategy: engine.Name(), Events: events})
		}
	}
	return results, nil
}

// WriteCSV saves the deduplicated signal events of every result to one CSV
// file: symbol, strategy, date, label, and the close snapshot.
func WriteCSV(path string, results []Result) error {
	rows := [][]string{{"Symbol", "Strategy", "Date", "Signal", "Close"}}
	for _, r := range results {
		for _, e := range r.Events {
			rows = append(rows, []string{
				r.Symbol,
				r.Strategy,
				e.Date.Format("2006-01-02"),
				e.Label,
				fmt.Sprintf("%.2f", e.Values["close"]),
			})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create signal CSV: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write signal CSV: %w", err)
	}
	return nil
}
