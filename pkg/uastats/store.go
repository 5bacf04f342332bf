package uastats

import (
	"cmp"
	"context"
	"slices"
	"time"
)

// DefaultLimit is used when Top is called with limit <= 0.
const DefaultLimit = 10

// Count is one counter value.
type Count struct {
	Value string `json:"value" db:"value"`
	Hits  int64  `json:"hits" db:"hits"`
}

// Store persists per-day counters.
type Store interface {
	// Record increments one counter per non-empty dimension value of e.
	Record(ctx context.Context, e Event) error
	// Top returns the limit highest counters of dim for the UTC day of day,
	// ordered by hits descending then value ascending.
	Top(ctx context.Context, dim Dimension, day time.Time, limit int) ([]Count, error)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func sortCounts(counts []Count) {
	slices.SortFunc(counts, func(a, b Count) int {
		if c := cmp.Compare(b.Hits, a.Hits); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
}

func topN(counts []Count, limit int) []Count {
	sortCounts(counts)
	if n := normalizeLimit(limit); len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
