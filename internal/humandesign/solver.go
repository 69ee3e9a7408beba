// Package humandesign computes the Human Design "Design" instant: the UTC
// moment at which the Sun was exactly 88 degrees of ecliptic longitude
// earlier than at birth.
package humandesign

import (
	"context"
	"math"
	"time"

	"meridian/internal/astro/transform"
	"meridian/internal/domain"
	"meridian/internal/ephemeris"
	pkgerrors "meridian/pkg/errors"
)

const (
	// Algorithm identifies the method in response metadata.
	Algorithm = "solar_arc_88_newton"

	// SolarArcDeg is the target arc between birth and design Sun.
	SolarArcDeg = 88.0

	// ToleranceDeg is the convergence threshold (~0.4 arc seconds).
	ToleranceDeg = 1e-4

	// MeanSolarMotion scales arc error into a time correction, deg/day.
	MeanSolarMotion = 0.9856

	// MaxIterations bounds the converger. Past this the best estimate is
	// returned flagged, never silently mislabeled as exact.
	MaxIterations = 20
)

// Result reports the solved design instant plus everything observability
// and tests need: iteration count, achieved precision, and whether the
// solver actually converged.
type Result struct {
	DesignUTC      time.Time
	Iterations     int
	PrecisionDeg   float64
	Converged      bool
	DaysDifference float64
}

// Solver runs the bounded Estimate -> Evaluate loop against a position
// provider.
type Solver struct {
	provider ephemeris.Provider
}

func NewSolver(provider ephemeris.Provider) *Solver {
	return &Solver{provider: provider}
}

// Solve finds the design instant for a birth moment. A provider failure at
// the birth instant is fatal; non-convergence is not — the caller receives
// the best estimate with Converged=false.
func (s *Solver) Solve(ctx context.Context, birth time.Time) (Result, error) {
	birth = birth.UTC()

	birthPos, err := s.provider.Position(ctx, domain.BodySun, birth)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeEphemerisUnavailable,
			"sun position at birth", err)
	}
	target := transform.NormalizeDeg(birthPos.Longitude - SolarArcDeg)

	estimate := birth.AddDate(0, 0, -88)
	precision := math.Inf(1)
	iterations := 0

	for iterations < MaxIterations {
		iterations++

		pos, err := s.provider.Position(ctx, domain.BodySun, estimate)
		if err != nil {
			return Result{}, pkgerrors.Wrap(pkgerrors.CodeEphemerisUnavailable,
				"sun position at design estimate", err)
		}

		diff := transform.SignedDelta(pos.Longitude, target)
		precision = math.Abs(diff)
		if precision <= ToleranceDeg {
			return s.result(birth, estimate, iterations, precision, true), nil
		}

		// The Sun overshoots the target by diff degrees; walk the estimate
		// back by the equivalent mean-motion days.
		correction := time.Duration(diff / MeanSolarMotion * 24 * float64(time.Hour))
		estimate = estimate.Add(-correction)
	}

	return s.result(birth, estimate, iterations, precision, false), nil
}

func (s *Solver) result(birth, design time.Time, iterations int, precision float64, converged bool) Result {
	return Result{
		DesignUTC:      design,
		Iterations:     iterations,
		PrecisionDeg:   precision,
		Converged:      converged,
		DaysDifference: birth.Sub(design).Hours() / 24,
	}
}

// Meta renders the response metadata block for a solved design.
func Meta(r Result) *domain.HumanDesignMeta {
	return &domain.HumanDesignMeta{
		DesignDatetime:    r.DesignUTC.UTC().Format(time.RFC3339),
		Algorithm:         Algorithm,
		Iterations:        r.Iterations,
		PrecisionAchieved: r.PrecisionDeg,
		DaysDifference:    r.DaysDifference,
		Converged:         r.Converged,
	}
}
