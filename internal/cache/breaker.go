package cache

import (
	"context"
	"sync"
	"time"
)

// Breaker wraps a Store with a consecutive-failure circuit breaker so a
// Redis outage degrades to direct calculation instead of failing requests:
// while open, Get reports a miss and Set is dropped. After the retry window
// a single probe is let through; enough consecutive probe successes close
// the circuit again.
type Breaker struct {
	inner Store

	mu               sync.Mutex
	state            breakerState
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
	retryAfter       time.Duration
	nextProbe        time.Time
}

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
)

// NewBreaker wraps inner with default thresholds: open after 5 consecutive
// failures, close after 3 consecutive probe successes, probe at most once
// per 30 seconds while open.
func NewBreaker(inner Store) *Breaker {
	return &Breaker{
		inner:            inner,
		failureThreshold: 5,
		successThreshold: 3,
		retryAfter:       30 * time.Second,
	}
}

func (b *Breaker) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !b.allow() {
		return nil, false, nil
	}
	val, ok, err := b.inner.Get(ctx, key)
	b.record(err)
	if err != nil {
		return nil, false, nil // degraded: treat as miss
	}
	return val, ok, nil
}

func (b *Breaker) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if !b.allow() {
		return nil
	}
	err := b.inner.Set(ctx, key, val, ttl)
	b.record(err)
	return nil // write failures never surface to the request
}

// Open reports whether the circuit is currently open.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == breakerOpen
}

// allow decides whether a call may reach the inner store.
func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == breakerClosed {
		return true
	}
	if time.Now().After(b.nextProbe) {
		b.nextProbe = time.Now().Add(b.retryAfter)
		return true
	}
	return false
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failureCount++
		b.successCount = 0
		if b.state == breakerClosed && b.failureCount >= b.failureThreshold {
			b.state = breakerOpen
			b.nextProbe = time.Now().Add(b.retryAfter)
		}
		return
	}
	if b.state == breakerOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = breakerClosed
			b.failureCount = 0
			b.successCount = 0
		}
		return
	}
	b.failureCount = 0
}
