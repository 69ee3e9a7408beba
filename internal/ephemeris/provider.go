// Package ephemeris defines the position-lookup port the pipeline depends
// on. Providers are treated as black boxes: the engine only needs ecliptic
// longitude/latitude/distance for a body at a UTC instant.
package ephemeris

import (
	"context"
	"fmt"
	"sync"
	"time"

	"meridian/internal/domain"
	pkgerrors "meridian/pkg/errors"
)

// Provider resolves a body's ecliptic position at a UTC instant.
type Provider interface {
	Position(ctx context.Context, id domain.BodyID, utc time.Time) (domain.Position, error)
}

// Unavailable builds the per-body error used when a provider cannot resolve
// a body/instant. The pipeline recovers these locally and continues.
func Unavailable(id domain.BodyID, cause error) error {
	return pkgerrors.Wrap(pkgerrors.CodeEphemerisUnavailable,
		fmt.Sprintf("no ephemeris data for %s", id), cause)
}

type memoKey struct {
	id   domain.BodyID
	unix int64
}

type memoVal struct {
	pos domain.Position
	err error
}

// Memoized caches provider results for the lifetime of one request so the
// same body/instant is never queried twice. Not intended to outlive a
// request; cross-request caching belongs to the cache store.
type Memoized struct {
	inner Provider

	mu      sync.Mutex
	results map[memoKey]memoVal
}

// Memoize wraps a provider with per-request memoization.
func Memoize(inner Provider) *Memoized {
	return &Memoized{inner: inner, results: make(map[memoKey]memoVal)}
}

func (m *Memoized) Position(ctx context.Context, id domain.BodyID, utc time.Time) (domain.Position, error) {
	key := memoKey{id: id, unix: utc.UTC().UnixNano()}

	m.mu.Lock()
	if v, ok := m.results[key]; ok {
		m.mu.Unlock()
		return v.pos, v.err
	}
	m.mu.Unlock()

	pos, err := m.inner.Position(ctx, id, utc)

	m.mu.Lock()
	m.results[key] = memoVal{pos: pos, err: err}
	m.mu.Unlock()
	return pos, err
}
