// Package db
package db

import (
	"context"
	"time"

	"github.com/tuathan/stock-signals/internal/bar"
)

// Storage is the interface for the daily-bar collaborator that supplies
// historical bars to the signal core. The core itself never persists
// anything; only the scan driver and cmd touch Storage.
type Storage interface {
	SaveBars(ctx context.Context, bars []bar.Bar) error
	GetBars(ctx context.Context, symbol string, start, end time.Time) ([]bar.Bar, error)
	Symbols(ctx context.Context) ([]string, error)
}
