package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tuathan/stock-signals/internal/bar"
)

// MemoryStorage keeps daily bars in memory, keyed by symbol and date. Used by
// tests and storage-less runs.
type MemoryStorage struct {
	mu sync.RWMutex

	// Bars keyed by symbol|date
	bars map[string]bar.Bar
}

func NewMemory() *MemoryStorage {
	return &MemoryStorage{
		bars: make(map[string]bar.Bar),
	}
}

func barKey(symbol string, date time.Time) string {
	return strings.ToUpper(symbol) + "|" + date.UTC().Format("2006-01-02")
}

func (m *MemoryStorage) SaveBars(ctx context.Context, bars []bar.Bar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range bars {
		if err := bars[i].Validate(); err != nil {
			return err
		}
		b := bars[i]
		b.Date = b.Date.UTC()
		m.bars[barKey(b.Symbol, b.Date)] = b
	}
	return nil
}

func (m *MemoryStorage) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]bar.Bar, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	start = start.UTC()
	end = end.UTC()
	var out []bar.Bar
	for _, b := range m.bars {
		if !strings.EqualFold(b.Symbol, symbol) {
			continue
		}
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *MemoryStorage) Symbols(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, b := range m.bars {
		key := strings.ToUpper(b.Symbol)
		if !seen[key] {
			seen[key] = true
			out = append(out, b.Symbol)
		}
	}
	sort.Strings(out)
	return out, nil
}
