package aspect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian/internal/astro/horizon"
	"meridian/internal/astro/meridianline"
	"meridian/internal/astro/transform"
	"meridian/internal/domain"
)

func testInstant() domain.Instant {
	return domain.NewInstant(time.Date(1990, 1, 15, 12, 0, 0, 0, time.UTC))
}

func TestAngleNames(t *testing.T) {
	assert.Equal(t, "square", Square.Name())
	assert.Equal(t, "conjunction", Conjunction.Name())
	// Unknown angles fall back to the numeric form.
	assert.Equal(t, "150.5°", Angle(150.5).Name())
}

func TestMCLinesDoubleValuedAngles(t *testing.T) {
	b := NewBuilder()
	body := domain.NewBody(domain.BodySun, domain.Position{Longitude: 100})
	instant := testInstant()

	square := b.MCLines(body, instant, []Angle{Square})
	require.Len(t, square, 2, "square aspects the MC on two distinct meridians")
	assert.NotEqual(t, square[0].Longitude, square[1].Longitude)

	opposition := b.MCLines(body, instant, []Angle{Opposition})
	require.Len(t, opposition, 1, "opposition is its own mirror")
}

func TestMCLineConjunctionMatchesBodyMC(t *testing.T) {
	b := NewBuilder()
	body := domain.NewBody(domain.BodySun, domain.Position{Longitude: 100})
	instant := testInstant()

	lines := b.MCLines(body, instant, []Angle{Conjunction})
	require.Len(t, lines, 1)

	ra, _ := transform.EclipticToEquatorial(100, 0, transform.ObliquityDeg)
	assert.InDelta(t, meridianline.MCLongitude(ra, instant.GMSTDeg), lines[0].Longitude, 1e-9)
	assert.Equal(t, "Sun conjunction MC", lines[0].Label)
}

func TestMCLineSatisfiesAspectEquation(t *testing.T) {
	// On each returned meridian, the culminating ecliptic degree must differ
	// from the body's longitude by exactly the aspect angle.
	b := NewBuilder()
	body := domain.NewBody(domain.BodyMars, domain.Position{Longitude: 222.5})
	instant := testInstant()

	for _, line := range b.MCLines(body, instant, AllAngles) {
		lst := transform.NormalizeDeg(instant.GMSTDeg + line.Longitude)
		mcLon := transform.MeridianEclipticLongitude(lst, transform.ObliquityDeg)
		sep := transform.SignedDelta(body.Position.Longitude, mcLon)
		assert.InDelta(t, float64(line.Angle), absDeg(sep), 1e-6, "label=%s", line.Label)
	}
}

func absDeg(d float64) float64 {
	if d < 0 {
		return -d
	}
	return d
}

func TestACLineConjunctionMatchesRisingCurve(t *testing.T) {
	b := NewBuilder()
	body := domain.NewBody(domain.BodyVenus, domain.Position{Longitude: 50})
	instant := testInstant()

	lines := b.ACLines(body, instant, []Angle{Conjunction})
	require.Len(t, lines, 1)

	curve := horizon.NewSolver().Curve(
		domain.NewBody(domain.BodyVenus, domain.Position{Longitude: 50}), instant)
	want := curve.ACPoints()
	require.Equal(t, len(want), len(lines[0].Points))
	assert.InDelta(t, want[0].Lon, lines[0].Points[0].Lon, 1e-9)
	assert.InDelta(t, want[len(want)-1].Lon, lines[0].Points[len(want)-1].Lon, 1e-9)
}

func TestACLinesSquareYieldsTwoCurves(t *testing.T) {
	b := NewBuilder()
	body := domain.NewBody(domain.BodySun, domain.Position{Longitude: 10})
	lines := b.ACLines(body, testInstant(), []Angle{Square})
	require.Len(t, lines, 2)
	assert.NotEqual(t, lines[0].Points[0].Lon, lines[1].Points[0].Lon)
}
