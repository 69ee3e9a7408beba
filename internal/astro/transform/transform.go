// Package transform holds the pure coordinate-frame conversions the line
// solvers are built on: ecliptic to equatorial, equatorial to horizontal,
// and the angle-normalization helpers shared across the astro packages.
//
// All functions are total: inputs are assumed to be well-formed angles in
// degrees (callers normalize first) and there are no error states.
package transform

import "math"

// ObliquityDeg is the mean obliquity of the ecliptic at J2000.
const ObliquityDeg = 23.4392911

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// NormalizeDeg maps an angle to [0, 360).
func NormalizeDeg(d float64) float64 {
	m := math.Mod(d, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// WrapLon maps a longitude to the canonical [-180, 180) range.
func WrapLon(d float64) float64 {
	return NormalizeDeg(d+180) - 180
}

// SignedDelta returns the signed shortest angular distance a-b in
// [-180, 180).
func SignedDelta(a, b float64) float64 {
	return WrapLon(a - b)
}

// EclipticToEquatorial converts ecliptic longitude/latitude (degrees) to
// right ascension/declination (degrees) for a given obliquity.
func EclipticToEquatorial(lonDeg, latDeg, obliquityDeg float64) (raDeg, decDeg float64) {
	lam := lonDeg * degToRad
	bet := latDeg * degToRad
	eps := obliquityDeg * degToRad

	sinDec := math.Sin(bet)*math.Cos(eps) + math.Cos(bet)*math.Sin(eps)*math.Sin(lam)
	dec := math.Asin(sinDec)

	y := math.Sin(lam)*math.Cos(eps) - math.Tan(bet)*math.Sin(eps)
	x := math.Cos(lam)
	ra := math.Atan2(y, x)

	return NormalizeDeg(ra * radToDeg), dec * radToDeg
}

// EquatorialToHorizontal converts equatorial coordinates to horizontal
// altitude/azimuth for an observer. lstDeg is the local sidereal time and
// obsLatDeg the observer latitude. Azimuth is measured from north,
// clockwise through east, in [0, 360).
func EquatorialToHorizontal(raDeg, decDeg, lstDeg, obsLatDeg float64) (altDeg, azDeg float64) {
	h := NormalizeDeg(lstDeg-raDeg) * degToRad
	dec := decDeg * degToRad
	phi := obsLatDeg * degToRad

	sinAlt := math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(h)
	alt := math.Asin(clamp(sinAlt, -1, 1))

	// Azimuth from south, westward; shifted to the from-north convention.
	azSouth := math.Atan2(math.Sin(h), math.Cos(h)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi))
	az := NormalizeDeg(azSouth*radToDeg + 180)

	return alt * radToDeg, az
}

// AscendantLongitude returns the ecliptic longitude of the ascendant for a
// local sidereal time and observer latitude (degrees).
func AscendantLongitude(lstDeg, obsLatDeg, obliquityDeg float64) float64 {
	theta := lstDeg * degToRad
	phi := obsLatDeg * degToRad
	eps := obliquityDeg * degToRad

	// atan2 keeps the eastern (rising) intersection; negating both terms
	// would select the descendant.
	lam := math.Atan2(math.Cos(theta),
		-(math.Sin(theta)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)))
	return NormalizeDeg(lam * radToDeg)
}

// MeridianEclipticLongitude returns the ecliptic longitude culminating on
// the local meridian (the MC) for a local sidereal time.
func MeridianEclipticLongitude(lstDeg, obliquityDeg float64) float64 {
	theta := lstDeg * degToRad
	eps := obliquityDeg * degToRad
	// tan(lam) = tan(theta) / cos(eps)
	lam := math.Atan2(math.Sin(theta), math.Cos(theta)*math.Cos(eps))
	return NormalizeDeg(lam * radToDeg)
}

// LSTForMeridianLongitude inverts MeridianEclipticLongitude: the local
// sidereal time at which ecliptic longitude lamDeg culminates.
func LSTForMeridianLongitude(lamDeg, obliquityDeg float64) float64 {
	lam := lamDeg * degToRad
	eps := obliquityDeg * degToRad
	theta := math.Atan2(math.Cos(eps)*math.Sin(lam), math.Cos(lam))
	return NormalizeDeg(theta * radToDeg)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
