package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meridian/internal/cache"
	"meridian/internal/chart"
	"meridian/internal/ephemeris"
	"meridian/internal/platform/config"
	"meridian/internal/platform/httpserver"
	"meridian/internal/platform/logger"
	"meridian/internal/platform/metrics"
	platformredis "meridian/internal/platform/redis"
	httptransport "meridian/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. All geometry and
// caching logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var store cache.Store
	var health httptransport.HealthChecker

	rdb, err := platformredis.New(cfg.Redis)
	switch {
	case err != nil:
		// Redis configured but unreachable at boot: degrade to the in-memory
		// store rather than refusing to start.
		log.Warn("redis unavailable, using in-memory cache", "error", err)
		store = cache.NewMemoryStore()
	case rdb != nil:
		log.Info("redis cache enabled")
		store = cache.NewBreaker(cache.NewRedisStore(rdb.Client))
		health = rdb
		defer rdb.Close()
	default:
		log.Info("redis not configured, using in-memory cache")
		store = cache.NewMemoryStore()
	}

	m := metrics.New()
	provider := ephemeris.NewAnalyticProvider()

	charts, err := chart.New(provider,
		chart.WithLogger(log),
		chart.WithMetrics(m),
		chart.WithCache(store, cfg.CacheTTL, cfg.HDCacheTTL),
		chart.WithWorkers(cfg.ChartWorkers),
	)
	if err != nil {
		log.Error("service init failed", "error", err)
		os.Exit(1)
	}

	handler := httptransport.NewHandler(charts, health, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	go func() {
		log.Info("starting meridian", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
