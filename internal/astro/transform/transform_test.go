package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDeg(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-30, 330},
		{725, 5},
		{-360, 0},
		{180, 180},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, NormalizeDeg(tc.in), 1e-9, "NormalizeDeg(%v)", tc.in)
	}
}

func TestWrapLon(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{180, -180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{359, -1},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, WrapLon(tc.in), 1e-9, "WrapLon(%v)", tc.in)
	}
}

func TestSignedDelta(t *testing.T) {
	assert.InDelta(t, 20.0, SignedDelta(10, 350), 1e-9)
	assert.InDelta(t, -20.0, SignedDelta(350, 10), 1e-9)
	assert.InDelta(t, -180.0, SignedDelta(90, 270), 1e-9)
	assert.InDelta(t, 0.0, SignedDelta(123.4, 123.4), 1e-9)
}

func TestEclipticToEquatorial(t *testing.T) {
	// Equinox and solstice points pin down both axes of the rotation.
	ra, dec := EclipticToEquatorial(0, 0, ObliquityDeg)
	assert.InDelta(t, 0.0, ra, 1e-9)
	assert.InDelta(t, 0.0, dec, 1e-9)

	ra, dec = EclipticToEquatorial(90, 0, ObliquityDeg)
	assert.InDelta(t, 90.0, ra, 1e-9)
	assert.InDelta(t, ObliquityDeg, dec, 1e-9)

	ra, dec = EclipticToEquatorial(180, 0, ObliquityDeg)
	assert.InDelta(t, 180.0, ra, 1e-9)
	assert.InDelta(t, 0.0, dec, 1e-9)

	ra, dec = EclipticToEquatorial(270, 0, ObliquityDeg)
	assert.InDelta(t, 270.0, ra, 1e-9)
	assert.InDelta(t, -ObliquityDeg, dec, 1e-9)
}

func TestEquatorialToHorizontal(t *testing.T) {
	// Body culminating on the meridian of a mid-latitude observer.
	alt, az := EquatorialToHorizontal(0, 0, 0, 45)
	assert.InDelta(t, 45.0, alt, 1e-9)
	assert.InDelta(t, 180.0, az, 1e-9)

	// Body six hours past culmination sits on the horizon for an equatorial
	// observer.
	alt, _ = EquatorialToHorizontal(90, 0, 0, 0)
	assert.InDelta(t, 0.0, alt, 1e-9)
}

func TestAscendantLongitude(t *testing.T) {
	// With 0h sidereal time at the equator the equinox culminates and the
	// solstice point rises.
	assert.InDelta(t, 90.0, AscendantLongitude(0, 0, ObliquityDeg), 1e-9)

	// Zero obliquity collapses the ecliptic onto the equator: the ascendant
	// is always a quarter turn past the sidereal time.
	assert.InDelta(t, 180.0, AscendantLongitude(90, 0, 0), 1e-9)
	assert.InDelta(t, 300.0, AscendantLongitude(210, 0, 0), 1e-9)
}

func TestAscendantIsOnEasternHorizon(t *testing.T) {
	// The ascendant must sit on the horizon (altitude 0) on the rising side
	// (azimuth east of the meridian) for any sidereal time and latitude.
	for _, lst := range []float64{0, 37, 90, 181, 299} {
		for _, lat := range []float64{-50, -20, 0, 33, 51.5} {
			asc := AscendantLongitude(lst, lat, ObliquityDeg)
			ra, dec := EclipticToEquatorial(asc, 0, ObliquityDeg)
			alt, az := EquatorialToHorizontal(ra, dec, lst, lat)
			assert.InDelta(t, 0.0, alt, 1e-6, "lst=%v lat=%v", lst, lat)
			assert.Greater(t, az, 0.0, "lst=%v lat=%v", lst, lat)
			assert.Less(t, az, 180.0, "lst=%v lat=%v", lst, lat)
		}
	}
}

func TestMeridianLongitudeRoundTrip(t *testing.T) {
	for _, lam := range []float64{0, 45, 123, 200, 300, 359} {
		lst := LSTForMeridianLongitude(lam, ObliquityDeg)
		back := MeridianEclipticLongitude(lst, ObliquityDeg)
		assert.InDelta(t, lam, back, 1e-9, "lam=%v", lam)
	}
}

func TestMeridianEclipticLongitudeAtSolstice(t *testing.T) {
	// The solstice point culminates exactly at 6h sidereal time.
	assert.InDelta(t, 90.0, MeridianEclipticLongitude(90, ObliquityDeg), 1e-9)
}
