// Package signal
package signal

import (
	"fmt"
	"strings"
	"time"
)

// labelSeparator joins the labels of multiple flags firing on the same bar.
const labelSeparator = ", "

// Flag is one named boolean signal column over an indicator frame.
type Flag struct {
	Name   string
	Values []bool
}

// Event is a materialized signal occurrence: the bar it fired on, the joined
// label of every flag true on that bar, and a snapshot of key indicator
// values. Index is the row position in the source frame; events are
// positionally adjacent when their indices differ by exactly 1 (trading-day
// adjacency, which may span a weekend). Events are read-only once created.
type Event struct {
	Index  int                `json:"index"`
	Date   time.Time          `json:"date"`
	Label  string             `json:"label"`
	Values map[string]float64 `json:"values"`
}

// Labels reduces an ordered flag list to one label per row: the names of all
// true flags on that row, joined in flag order. Rows with no true flag get an
// empty label. The flag order is fixed by the caller, never inferred.
func Labels(n int, flags []Flag) ([]string, error) {
	for _, f := range flags {
		if len(f.Values) != n {
			return nil, fmt.Errorf("flag %q has %d values, want %d", f.Name, len(f.Values), n)
		}
	}
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		var parts []string
		for _, f := range flags {
			if f.Values[i] {
				parts = append(parts, f.Name)
			}
		}
		labels[i] = strings.Join(parts, labelSeparator)
	}
	return labels, nil
}

// Deduplicate collapses consecutive identical labels to their first
// occurrence. The input must be ordered by Index. A later event is dropped
// only when it is positionally adjacent to the previous labeled event
// (index difference exactly 1) and carries an identical label; a run broken
// by even one label-free or differently-labeled bar starts over.
//
// Applying Deduplicate twice yields the same result as once.
func Deduplicate(events []Event) []Event {
	var kept []Event
	prevLabel := ""
	prevIndex := -1
	for _, e := range events {
		if e.Label == "" {
			continue
		}
		consecutive := prevIndex >= 0 && e.Index-prevIndex == 1
		same := e.Label == prevLabel
		if !(consecutive && same) {
			kept = append(kept, e)
		}
		prevLabel = e.Label
		prevIndex = e.Index
	}
	return kept
}
