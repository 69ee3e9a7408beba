package ephemeris

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian/internal/astro/transform"
	"meridian/internal/domain"
	pkgerrors "meridian/pkg/errors"
)

var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSunLongitudeAtJ2000(t *testing.T) {
	p := NewAnalyticProvider()
	pos, err := p.Position(context.Background(), domain.BodySun, j2000)
	require.NoError(t, err)

	// The Sun stood near 280.4 degrees (10 Capricorn) at the epoch.
	assert.InDelta(t, 280.4, pos.Longitude, 1.0)
	assert.InDelta(t, 0.0, pos.Latitude, 0.01)
	assert.InDelta(t, 0.983, pos.Distance, 0.01)
}

func TestSunMeanDailyMotion(t *testing.T) {
	p := NewAnalyticProvider()
	ctx := context.Background()

	a, err := p.Position(ctx, domain.BodySun, j2000)
	require.NoError(t, err)
	b, err := p.Position(ctx, domain.BodySun, j2000.AddDate(0, 0, 1))
	require.NoError(t, err)

	// True motion runs ~1.02 deg/day near perihelion; only the mean is 0.9856.
	motion := transform.SignedDelta(b.Longitude, a.Longitude)
	assert.InDelta(t, 0.9856, motion, 0.1)
}

func TestNodesAreOpposite(t *testing.T) {
	p := NewAnalyticProvider()
	ctx := context.Background()

	north, err := p.Position(ctx, domain.BodyNorthNode, j2000)
	require.NoError(t, err)
	south, err := p.Position(ctx, domain.BodySouthNode, j2000)
	require.NoError(t, err)

	assert.InDelta(t, 180.0, transform.NormalizeDeg(south.Longitude-north.Longitude), 1e-9)
	// Mean node near 3 Leo at the epoch.
	assert.InDelta(t, 125.04, north.Longitude, 0.01)
}

func TestPlanetsReturnPlausiblePositions(t *testing.T) {
	p := NewAnalyticProvider()
	ctx := context.Background()

	for _, id := range []domain.BodyID{
		domain.BodyMercury, domain.BodyVenus, domain.BodyMars, domain.BodyJupiter,
		domain.BodySaturn, domain.BodyUranus, domain.BodyNeptune, domain.BodyPluto,
		domain.BodyMoon, domain.BodyLilith,
	} {
		pos, err := p.Position(ctx, id, j2000)
		require.NoError(t, err, "body %s", id)
		assert.GreaterOrEqual(t, pos.Longitude, 0.0, "body %s", id)
		assert.Less(t, pos.Longitude, 360.0, "body %s", id)
		assert.LessOrEqual(t, pos.Latitude, 90.0, "body %s", id)
		assert.GreaterOrEqual(t, pos.Latitude, -90.0, "body %s", id)
	}
}

func TestInnerPlanetsStayNearTheSun(t *testing.T) {
	p := NewAnalyticProvider()
	ctx := context.Background()

	sun, err := p.Position(ctx, domain.BodySun, j2000)
	require.NoError(t, err)

	mercury, err := p.Position(ctx, domain.BodyMercury, j2000)
	require.NoError(t, err)
	venus, err := p.Position(ctx, domain.BodyVenus, j2000)
	require.NoError(t, err)

	// Geocentric elongation limits: ~28 degrees for Mercury, ~48 for Venus.
	assert.LessOrEqual(t, abs(transform.SignedDelta(mercury.Longitude, sun.Longitude)), 30.0)
	assert.LessOrEqual(t, abs(transform.SignedDelta(venus.Longitude, sun.Longitude)), 50.0)
}

func TestUnsupportedBodies(t *testing.T) {
	p := NewAnalyticProvider()
	ctx := context.Background()

	for _, id := range []domain.BodyID{domain.BodyChiron, domain.BodyCeres, domain.BodyVesta} {
		_, err := p.Position(ctx, id, j2000)
		require.Error(t, err, "body %s", id)
		assert.Equal(t, pkgerrors.CodeEphemerisUnavailable, pkgerrors.CodeOf(err))
	}
}

func TestMemoizedProviderCaches(t *testing.T) {
	calls := 0
	inner := providerFunc(func(_ context.Context, id domain.BodyID, _ time.Time) (domain.Position, error) {
		calls++
		return domain.Position{Longitude: 42}, nil
	})
	m := Memoize(inner)

	ctx := context.Background()
	for range 3 {
		pos, err := m.Position(ctx, domain.BodySun, j2000)
		require.NoError(t, err)
		assert.Equal(t, 42.0, pos.Longitude)
	}
	assert.Equal(t, 1, calls)

	// A different body is a different key.
	_, err := m.Position(ctx, domain.BodyMoon, j2000)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoizedProviderCachesErrors(t *testing.T) {
	calls := 0
	inner := providerFunc(func(_ context.Context, id domain.BodyID, _ time.Time) (domain.Position, error) {
		calls++
		return domain.Position{}, Unavailable(id, nil)
	})
	m := Memoize(inner)

	ctx := context.Background()
	_, err1 := m.Position(ctx, domain.BodyChiron, j2000)
	_, err2 := m.Position(ctx, domain.BodyChiron, j2000)
	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, 1, calls)
}

type providerFunc func(ctx context.Context, id domain.BodyID, utc time.Time) (domain.Position, error)

func (f providerFunc) Position(ctx context.Context, id domain.BodyID, utc time.Time) (domain.Position, error) {
	return f(ctx, id, utc)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
