// Package cache provides the read-through, write-once-per-key store for
// serialized feature collections, plus the key and invalidation policy.
// Either a full collection is cached under a key or nothing is; there is no
// partial-result caching.
package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"meridian/internal/domain"
)

// Store is the cache port injected into the chart service.
type Store interface {
	// Get returns the cached blob and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a blob under key with the given TTL.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Key derives the cache key for a request:
// {layer_type}:{instant_utc}:{lat}:{lon}, with an options token appended
// when the filters deviate from the defaults. Segments are sanitized so a
// value can never masquerade as a delimiter.
func Key(layer domain.LayerType, instant time.Time, lat, lon float64, opts domain.ChartOptions) string {
	segs := []string{
		sanitizeSegment(string(layer)),
		sanitizeSegment(instant.UTC().Format(time.RFC3339)),
		fmt.Sprintf("%.4f", lat),
		fmt.Sprintf("%.4f", lon),
	}
	if opts != domain.DefaultOptions() {
		segs = append(segs, optionsToken(opts))
	}
	return strings.Join(segs, ":")
}

// sanitizeSegment escapes delimiter characters in key segments.
func sanitizeSegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

func optionsToken(opts domain.ChartOptions) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%t%t%t%t%t%t%t",
		opts.IncludeACDC, opts.IncludeICMC, opts.IncludeAspects,
		opts.IncludeParans, opts.IncludeFixedStars, opts.IncludeHermeticLots,
		opts.ExtendedBodies)
	return fmt.Sprintf("o%08x", h.Sum32())
}
