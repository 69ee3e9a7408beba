package humandesign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian/internal/astro/transform"
	"meridian/internal/domain"
	"meridian/internal/ephemeris"
	pkgerrors "meridian/pkg/errors"
)

type providerFunc func(ctx context.Context, id domain.BodyID, utc time.Time) (domain.Position, error)

func (f providerFunc) Position(ctx context.Context, id domain.BodyID, utc time.Time) (domain.Position, error) {
	return f(ctx, id, utc)
}

// meanSun moves at exactly the mean solar rate, so the converger's model is
// exact after the first correction.
func meanSun() ephemeris.Provider {
	epoch := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	return providerFunc(func(_ context.Context, _ domain.BodyID, utc time.Time) (domain.Position, error) {
		days := utc.Sub(epoch).Hours() / 24
		return domain.Position{Longitude: transform.NormalizeDeg(280.46 + MeanSolarMotion*days)}, nil
	})
}

func TestSolveAgainstMeanSun(t *testing.T) {
	s := NewSolver(meanSun())
	birth := time.Date(1990, 1, 15, 12, 0, 0, 0, time.UTC)

	res, err := s.Solve(context.Background(), birth)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.PrecisionDeg, ToleranceDeg)
	assert.GreaterOrEqual(t, res.Iterations, 2)
	assert.LessOrEqual(t, res.Iterations, 5)

	// 88 degrees at the mean rate is about 89.3 days.
	assert.InDelta(t, SolarArcDeg/MeanSolarMotion, res.DaysDifference, 0.01)
	assert.True(t, res.DesignUTC.Before(birth))
}

func TestSolveRealEphemeris(t *testing.T) {
	s := NewSolver(ephemeris.NewAnalyticProvider())
	birth := time.Date(1990, 1, 15, 12, 0, 0, 0, time.UTC)

	res, err := s.Solve(context.Background(), birth)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.PrecisionDeg, ToleranceDeg)
	assert.GreaterOrEqual(t, res.Iterations, 2)
	assert.LessOrEqual(t, res.Iterations, 6)
	assert.InDelta(t, 88.5, res.DaysDifference, 2.5)

	// The solved instant must actually satisfy the 88-degree arc.
	p := ephemeris.NewAnalyticProvider()
	birthPos, err := p.Position(context.Background(), domain.BodySun, birth)
	require.NoError(t, err)
	designPos, err := p.Position(context.Background(), domain.BodySun, res.DesignUTC)
	require.NoError(t, err)
	arc := transform.NormalizeDeg(birthPos.Longitude - designPos.Longitude)
	assert.InDelta(t, SolarArcDeg, arc, ToleranceDeg*2)
}

func TestSolveFlagsNonConvergence(t *testing.T) {
	// A frozen Sun keeps the arc error at 88 degrees forever: the solver must
	// stop at the iteration cap and flag the result instead of looping.
	frozen := providerFunc(func(_ context.Context, _ domain.BodyID, _ time.Time) (domain.Position, error) {
		return domain.Position{Longitude: 100}, nil
	})
	s := NewSolver(frozen)

	res, err := s.Solve(context.Background(), time.Date(1990, 1, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, MaxIterations, res.Iterations)
	assert.Greater(t, res.PrecisionDeg, ToleranceDeg)
}

func TestSolveProviderFailureIsFatal(t *testing.T) {
	failing := providerFunc(func(_ context.Context, id domain.BodyID, _ time.Time) (domain.Position, error) {
		return domain.Position{}, errors.New("ephemeris offline")
	})
	s := NewSolver(failing)

	_, err := s.Solve(context.Background(), time.Date(1990, 1, 15, 12, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeEphemerisUnavailable, pkgerrors.CodeOf(err))
}

func TestMeta(t *testing.T) {
	res := Result{
		DesignUTC:      time.Date(1989, 10, 18, 3, 21, 7, 0, time.UTC),
		Iterations:     3,
		PrecisionDeg:   4.2e-5,
		Converged:      true,
		DaysDifference: 89.36,
	}
	meta := Meta(res)
	assert.Equal(t, "1989-10-18T03:21:07Z", meta.DesignDatetime)
	assert.Equal(t, Algorithm, meta.Algorithm)
	assert.Equal(t, 3, meta.Iterations)
	assert.True(t, meta.Converged)
	assert.InDelta(t, 89.36, meta.DaysDifference, 1e-9)
}
