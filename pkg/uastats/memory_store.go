package uastats

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps counters in process memory. Useful for single instances
// and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	days map[string]map[Dimension]map[string]int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{days: make(map[string]map[Dimension]map[string]int64)}
}

func (ms *MemoryStore) Record(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	day := e.day()
	dims, ok := ms.days[day]
	if !ok {
		dims = make(map[Dimension]map[string]int64, len(Dimensions))
		ms.days[day] = dims
	}
	for _, v := range e.values() {
		counters, ok := dims[v.dim]
		if !ok {
			counters = make(map[string]int64)
			dims[v.dim] = counters
		}
		counters[v.val]++
	}
	return nil
}

func (ms *MemoryStore) Top(ctx context.Context, dim Dimension, day time.Time, limit int) ([]Count, error) {
	if _, err := ParseDimension(string(dim)); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	counters := ms.days[Day(day)][dim]
	out := make([]Count, 0, len(counters))
	for v, n := range counters {
		out = append(out, Count{Value: v, Hits: n})
	}
	ms.mu.RUnlock()

	return topN(out, limit), nil
}

// Prune drops every day strictly before the UTC day of before.
func (ms *MemoryStore) Prune(before time.Time) {
	cutoff := Day(before)

	ms.mu.Lock()
	defer ms.mu.Unlock()
	for day := range ms.days {
		if day < cutoff {
			delete(ms.days, day)
		}
	}
}
