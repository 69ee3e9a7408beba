// Package chart runs the full astrocartography pipeline: resolve the target
// instant, fan out per-body line solving, join for parans, and assemble the
// tagged feature collection. The service is stateless aside from injected
// ports; identical requests yield identical collections.
package chart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"meridian/internal/astro/aspect"
	"meridian/internal/astro/horizon"
	"meridian/internal/astro/paran"
	"meridian/internal/astro/stars"
	"meridian/internal/cache"
	"meridian/internal/domain"
	"meridian/internal/ephemeris"
	"meridian/internal/platform/metrics"
)

// Service orchestrates the computation pipeline.
type Service struct {
	provider  ephemeris.Provider
	store     cache.Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
	workers   int
	starNames []string

	cacheTTL   time.Duration
	hdCacheTTL time.Duration

	flight singleflight.Group

	horizon *horizon.Solver
	aspects *aspect.Builder
	parans  *paran.Solver
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCache injects the read-through store and its TTLs.
func WithCache(store cache.Store, ttl, hdTTL time.Duration) Option {
	return func(s *Service) {
		s.store = store
		s.cacheTTL = ttl
		s.hdCacheTTL = hdTTL
	}
}

// WithWorkers bounds the per-body worker pool.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithFixedStars overrides the star names projected onto charts. Names are
// resolved against the catalog per request; an unknown name is recovered
// into the response's error list like a failed body.
func WithFixedStars(names ...string) Option {
	return func(s *Service) { s.starNames = names }
}

// New constructs the pipeline service around a position provider.
func New(provider ephemeris.Provider, opts ...Option) (*Service, error) {
	if provider == nil {
		return nil, errors.New("position provider is required")
	}
	s := &Service{
		provider:   provider,
		logger:     slog.Default(),
		workers:    4,
		starNames:  stars.DefaultNames,
		cacheTTL:   time.Hour,
		hdCacheTTL: 24 * time.Hour,
		horizon:    horizon.NewSolver(),
		aspects:    aspect.NewBuilder(),
		parans:     paran.NewSolver(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// ComputeFeaturesJSON is the cached entry point: it serves the serialized
// collection from the store when present, and otherwise computes, stores,
// and returns it. Concurrent misses for the same key coalesce into a single
// build. The second return reports whether the response came from cache.
func (s *Service) ComputeFeaturesJSON(ctx context.Context, req domain.ChartRequest) ([]byte, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	if s.store == nil {
		fc, err := s.ComputeFeatures(ctx, req)
		if err != nil {
			return nil, false, err
		}
		blob, err := json.Marshal(fc)
		return blob, false, err
	}

	key := cache.Key(req.Layer, req.Instant, req.Lat, req.Lon, req.Options)

	type flightResult struct {
		blob   []byte
		cached bool
	}
	v, err, _ := s.flight.Do(key, func() (any, error) {
		if blob, ok, err := s.store.Get(ctx, key); err == nil && ok {
			s.metrics.IncrementCacheHit()
			return flightResult{blob: blob, cached: true}, nil
		}
		s.metrics.IncrementCacheMiss()

		fc, err := s.ComputeFeatures(ctx, req)
		if err != nil {
			return nil, err
		}
		blob, err := json.Marshal(fc)
		if err != nil {
			return nil, err
		}
		ttl := s.cacheTTL
		if req.Layer == domain.LayerHDDesign {
			ttl = s.hdCacheTTL
		}
		if err := s.store.Set(ctx, key, blob, ttl); err != nil {
			s.logger.Warn("cache write failed", "key", key, "error", err)
		}
		return flightResult{blob: blob}, nil
	})
	if err != nil {
		return nil, false, err
	}
	fr := v.(flightResult)
	return fr.blob, fr.cached, nil
}
