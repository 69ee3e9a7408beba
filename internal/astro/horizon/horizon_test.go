package horizon

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian/internal/astro/transform"
	"meridian/internal/domain"
)

func testInstant() domain.Instant {
	return domain.NewInstant(time.Date(1990, 1, 15, 12, 0, 0, 0, time.UTC))
}

func equatorBody() domain.Body {
	// Zero ecliptic longitude and latitude put the body exactly on the
	// celestial equator: it rises and sets at every latitude.
	return domain.NewBody(domain.BodySun, domain.Position{Longitude: 0, Latitude: 0})
}

func TestCurveSpansFullBandForEquatorialBody(t *testing.T) {
	s := NewSolver()
	curve := s.Curve(equatorBody(), testInstant())

	require.False(t, curve.Empty())

	// 265 samples rising, 264 setting after dropping the join duplicate.
	wantSamples := int((latMax-latMin)/latStep) + 1
	assert.Len(t, curve.ACPoints(), wantSamples)
	assert.Len(t, curve.Points, 2*wantSamples-1)
	assert.Equal(t, wantSamples-1, curve.ACEnd)
	assert.Equal(t, wantSamples, curve.DCStart)
	assert.Less(t, curve.ACEnd, curve.DCStart)

	// AC runs south to north, DC back north to south.
	ac, dc := curve.ACPoints(), curve.DCPoints()
	assert.InDelta(t, latMin, ac[0].Lat, 1e-9)
	assert.InDelta(t, latMax, ac[len(ac)-1].Lat, 1e-9)
	assert.InDelta(t, latMin, dc[len(dc)-1].Lat, 1e-9)
}

func TestCurvePointsLieOnHorizon(t *testing.T) {
	s := NewSolver()
	instant := testInstant()
	body := domain.NewBody(domain.BodyMars, domain.Position{Longitude: 123.4, Latitude: 1.2})
	curve := s.Curve(body, instant)
	require.False(t, curve.Empty())

	ra, dec := transform.EclipticToEquatorial(
		body.Position.Longitude, body.Position.Latitude, transform.ObliquityDeg)

	for _, p := range curve.Points {
		alt, _ := transform.EquatorialToHorizontal(ra, dec, instant.GMSTDeg+p.Lon, p.Lat)
		assert.InDelta(t, 0.0, alt, 0.01, "lat=%v lon=%v", p.Lat, p.Lon)
	}
}

func TestEquatorialBodyYieldsVerticalBranches(t *testing.T) {
	// At declination zero the horizon hour angle is 90 everywhere, so each
	// branch is a straight meridian.
	s := NewSolver()
	instant := testInstant()
	curve := s.Curve(equatorBody(), instant)

	ra, _ := transform.EclipticToEquatorial(0, 0, transform.ObliquityDeg)
	wantRise := transform.WrapLon(ra - 90 - instant.GMSTDeg)
	wantSet := transform.WrapLon(ra + 90 - instant.GMSTDeg)

	for _, p := range curve.ACPoints() {
		assert.InDelta(t, wantRise, p.Lon, 1e-3)
	}
	for _, p := range curve.DCPoints() {
		assert.InDelta(t, wantSet, p.Lon, 1e-3)
	}
}

func TestHighDeclinationShortensCurve(t *testing.T) {
	s := NewSolver()
	// High ecliptic latitude pushes declination to ~83 degrees; the body is
	// circumpolar outside a narrow equatorial band.
	body := domain.NewBody(domain.BodyMoon, domain.Position{Longitude: 90, Latitude: 60})
	curve := s.Curve(body, testInstant())

	require.False(t, curve.Empty())
	full := 2*(int((latMax-latMin)/latStep)+1) - 1
	assert.Less(t, len(curve.Points), full)
	for _, p := range curve.Points {
		assert.LessOrEqual(t, math.Abs(p.Lat), 8.0)
	}
}

func TestPolarDeclinationYieldsEmptyCurve(t *testing.T) {
	s := NewSolver()
	curve := s.curveEquatorial(equatorBody(), 0, 90, 0)
	assert.True(t, curve.Empty())
	assert.Equal(t, -1, curve.ACEnd)
}

func TestHorizonHourAngle(t *testing.T) {
	h0, ok := horizonHourAngle(0, 45)
	require.True(t, ok)
	assert.InDelta(t, 90.0, h0, 1e-9)

	// cos H0 = -tan(50) tan(20)
	h0, ok = horizonHourAngle(50, 20)
	require.True(t, ok)
	want := math.Acos(-math.Tan(50*math.Pi/180)*math.Tan(20*math.Pi/180)) * 180 / math.Pi
	assert.InDelta(t, want, h0, 1e-9)

	// Circumpolar: no crossing.
	_, ok = horizonHourAngle(60, 40)
	assert.False(t, ok)
}

func TestRisingAndSettingLines(t *testing.T) {
	rise := RisingLine(0, 20, 0)
	set := SettingLine(0, 20, 0)

	lonR, ok := rise(0)
	require.True(t, ok)
	assert.InDelta(t, -90.0, lonR, 1e-9)

	lonS, ok := set(0)
	require.True(t, ok)
	assert.InDelta(t, 90.0, lonS, 1e-9)

	// Undefined where the body never crosses the horizon.
	_, ok = rise(80)
	assert.False(t, ok)
}
