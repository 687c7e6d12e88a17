// Package cache provides the time-bounded in-memory datasets that sit
// between the query layer and the external sources.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lodnet/luach/internal/logger"
)

// FetchFunc regenerates a dataset from source truth.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Dataset caches one wholly-regenerated collection with a TTL. There is no
// single-flight: two readers seeing a stale cache both refresh, which is
// accepted because fetches are idempotent and side-effect free.
type Dataset[T any] struct {
	name  string
	ttl   time.Duration
	fetch FetchFunc[T]
	now   func() time.Time

	mu        sync.RWMutex
	items     []T
	fetchedAt time.Time
}

func NewDataset[T any](name string, ttl time.Duration, fetch FetchFunc[T]) *Dataset[T] {
	return &Dataset[T]{
		name:  name,
		ttl:   ttl,
		fetch: fetch,
		now:   time.Now,
	}
}

// Get returns the stored collection when it is non-empty and younger than
// the TTL, refreshing it otherwise. An empty stored collection is never
// valid, so a fetch cycle that yielded nothing is retried on the next read
// instead of persisting a failure state.
func (d *Dataset[T]) Get(ctx context.Context) ([]T, error) {
	d.mu.RLock()
	if d.valid() {
		items := d.items
		d.mu.RUnlock()
		return items, nil
	}
	d.mu.RUnlock()
	return d.refresh(ctx)
}

// ForceRefresh bypasses the TTL check unconditionally.
func (d *Dataset[T]) ForceRefresh(ctx context.Context) ([]T, error) {
	return d.refresh(ctx)
}

func (d *Dataset[T]) valid() bool {
	return len(d.items) > 0 && d.now().Sub(d.fetchedAt) < d.ttl
}

func (d *Dataset[T]) refresh(ctx context.Context) ([]T, error) {
	start := d.now()
	items, err := d.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing %s: %w", d.name, err)
	}

	d.mu.Lock()
	d.items = items
	d.fetchedAt = d.now()
	d.mu.Unlock()

	logger.Get().Info().
		Str("dataset", d.name).
		Int("items", len(items)).
		Dur("duration", d.now().Sub(start)).
		Msg("dataset refreshed")
	return items, nil
}

// Peek returns whatever is currently stored without triggering a refresh.
func (d *Dataset[T]) Peek() []T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.items
}

// ExpiresAt reports when the current collection goes stale.
func (d *Dataset[T]) ExpiresAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fetchedAt.Add(d.ttl)
}

// Status reports cache freshness for diagnostics.
type Status struct {
	Cached           bool   `json:"cached"`
	Items            int    `json:"itemsCount"`
	AgeMinutes       int    `json:"ageMinutes"`
	ExpiresInMinutes int    `json:"expiresInMinutes"`
	LastFetch        string `json:"lastFetch,omitempty"`
}

func (d *Dataset[T]) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()

	st := Status{
		Cached: d.valid(),
		Items:  len(d.items),
	}
	if !d.fetchedAt.IsZero() {
		age := d.now().Sub(d.fetchedAt)
		st.AgeMinutes = int(age.Round(time.Minute) / time.Minute)
		st.LastFetch = d.fetchedAt.Format(time.RFC3339)
		if st.Cached {
			st.ExpiresInMinutes = int((d.ttl - age).Round(time.Minute) / time.Minute)
		}
	}
	return st
}
