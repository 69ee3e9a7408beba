// Package redis owns the shared connection behind the chart cache. Caching
// is optional; a process without a configured URL runs on the in-memory
// store instead.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"meridian/internal/platform/config"
)

// Client wraps go-redis with the liveness probe the health endpoint reports.
type Client struct {
	*redis.Client
}

// New dials Redis from configuration. An empty URL means caching is not
// configured; both return values are nil and the caller falls back to the
// in-memory store.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	// An unreachable Redis is surfaced at startup, bounded by the dial
	// timeout, rather than on the first chart request.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the connection still answers, feeding the health
// endpoint's cache status.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.Client.Close()
}
