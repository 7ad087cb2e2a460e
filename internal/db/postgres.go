package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tuathan/stock-signals/internal/bar"
	_ "github.com/lib/pq"
)

// Postgres stores daily bars in a Postgres daily_bars table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a Postgres-backed store and ensures the schema exists.
func NewPostgres(connStr string, maxOpen, maxIdle int) (*Postgres, error) {
	database, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	database.SetMaxOpenConns(maxOpen)
	database.SetMaxIdleConns(maxIdle)

	p := &Postgres{db: database}
	if err := p.ensureSchema(); err != nil {
		return nil, err
	}
	return p, nil
}

// GetDB exposes the underlying handle (tests, migrations).
func (p *Postgres) GetDB() *sql.DB { return p.db }

func (p *Postgres) ensureSchema() error {
	_, err := p.db.Exec(`
	CREATE TABLE IF NOT EXISTS daily_bars (
		symbol TEXT NOT NULL,
		day DATE NOT NULL,
		open DOUBLE PRECISION NOT NULL,
		high DOUBLE PRECISION NOT NULL,
		low DOUBLE PRECISION NOT NULL,
		close DOUBLE PRECISION NOT NULL,
		volume DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (symbol, day)
	)`)
	if err != nil {
		return fmt.Errorf("failed to ensure daily_bars schema: %w", err)
	}
	return nil
}

// executeWithTransaction runs fn inside a transaction with rollback on error.
func (p *Postgres) executeWithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if fnErr := fn(tx); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %w (original error: %v)", rbErr, fnErr)
		}
		return fnErr
	}
	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("transaction commit failed: %w", commitErr)
	}
	return nil
}

// SaveBars upserts a batch of daily bars.
func (p *Postgres) SaveBars(ctx context.Context, bars []bar.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	for i := range bars {
		if err := bars[i].Validate(); err != nil {
			return fmt.Errorf("invalid bar at index %d for %s at %s: %w",
				i, bars[i].Symbol, bars[i].Date.Format("2006-01-02"), err)
		}
	}

	return p.executeWithTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_bars (symbol, day, open, high, low, close, volume)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (symbol, day) DO UPDATE SET
			open=EXCLUDED.open, high=EXCLUDED.high, low=EXCLUDED.low,
			close=EXCLUDED.close, volume=EXCLUDED.volume`)
		if err != nil {
			return fmt.Errorf("failed to prepare daily_bars insert: %w", err)
		}
		defer stmt.Close()

		for _, b := range bars {
			if _, err := stmt.ExecContext(ctx, b.Symbol, b.Date.UTC(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
				return fmt.Errorf("failed to save bar for %s at %s: %w", b.Symbol, b.Date.Format("2006-01-02"), err)
			}
		}
		return nil
	})
}

// GetBars returns the bars for one symbol between start and end inclusive,
// ordered by date ascending.
func (p *Postgres) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]bar.Bar, error) {
	rows, err := p.db.QueryContext(ctx, `
	SELECT symbol, day, open, high, low, close, volume
	FROM daily_bars
	WHERE symbol = $1 AND day >= $2 AND day <= $3
	ORDER BY day ASC`, symbol, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query bars for %s: %w", symbol, err)
	}
	defer rows.Close()

	var out []bar.Bar
	for rows.Next() {
		var b bar.Bar
		if err := rows.Scan(&b.Symbol, &b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan bar row: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Symbols returns the distinct symbols with stored bars.
func (p *Postgres) Symbols(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM daily_bars ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
