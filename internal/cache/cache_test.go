package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian/internal/domain"
)

var testInstant = time.Date(1990, 1, 15, 12, 0, 0, 0, time.UTC)

func TestKeyFormat(t *testing.T) {
	key := Key(domain.LayerNatal, testInstant, 51.5, -0.1, domain.DefaultOptions())
	assert.Equal(t, "natal:1990-01-15T12_00_00Z:51.5000:-0.1000", key)
}

func TestKeyDistinguishesRequests(t *testing.T) {
	base := Key(domain.LayerNatal, testInstant, 51.5, -0.1, domain.DefaultOptions())

	assert.NotEqual(t, base, Key(domain.LayerTransit, testInstant, 51.5, -0.1, domain.DefaultOptions()))
	assert.NotEqual(t, base, Key(domain.LayerNatal, testInstant.Add(time.Minute), 51.5, -0.1, domain.DefaultOptions()))
	assert.NotEqual(t, base, Key(domain.LayerNatal, testInstant, 51.5001, -0.1, domain.DefaultOptions()))
}

func TestKeyAppendsOptionsTokenForNonDefaults(t *testing.T) {
	defaults := Key(domain.LayerNatal, testInstant, 51.5, -0.1, domain.DefaultOptions())

	opts := domain.DefaultOptions()
	opts.IncludeParans = false
	custom := Key(domain.LayerNatal, testInstant, 51.5, -0.1, opts)

	assert.NotEqual(t, defaults, custom)
	assert.True(t, strings.HasPrefix(custom, defaults+":o"))

	// Sub-degree coordinate noise inside the rounding quantum coalesces.
	assert.Equal(t, defaults, Key(domain.LayerNatal, testInstant, 51.50001, -0.1, domain.DefaultOptions()))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Hour))
	val, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

// failStore always errors, standing in for an unreachable Redis.
type failStore struct{ calls int }

func (f *failStore) Get(context.Context, string) ([]byte, bool, error) {
	f.calls++
	return nil, false, errors.New("connection refused")
}

func (f *failStore) Set(context.Context, string, []byte, time.Duration) error {
	f.calls++
	return errors.New("connection refused")
}

func TestBreakerNeverSurfacesErrors(t *testing.T) {
	b := NewBreaker(&failStore{})
	ctx := context.Background()

	_, ok, err := b.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, b.Set(ctx, "k", []byte("v"), time.Hour))
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &failStore{}
	b := NewBreaker(inner)
	ctx := context.Background()

	for range 5 {
		_, _, _ = b.Get(ctx, "k")
	}
	assert.True(t, b.Open())

	// While open, calls are shed without touching the inner store.
	before := inner.calls
	for range 10 {
		_, ok, err := b.Get(ctx, "k")
		assert.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, before, inner.calls)
}

func TestBreakerClosedPassesThrough(t *testing.T) {
	inner := NewMemoryStore()
	b := NewBreaker(inner)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "k", []byte("v"), time.Hour))
	val, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
	assert.False(t, b.Open())
}
