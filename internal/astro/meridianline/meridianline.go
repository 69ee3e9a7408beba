// Package meridianline computes MC/IC meridian longitudes. These are closed
// form: the MC meridian is where the body's right ascension culminates at
// the chart instant, and the IC meridian is exactly 180 degrees away.
package meridianline

import (
	"meridian/internal/astro/transform"
	"meridian/internal/domain"
)

// Meridian lines are drawn across this latitude range.
const (
	DrawLatMin = -85.0
	DrawLatMax = 85.0
)

// MCLongitude returns the geographic longitude where a body with right
// ascension raDeg culminates, given Greenwich sidereal time.
func MCLongitude(raDeg, gmstDeg float64) float64 {
	return transform.WrapLon(raDeg - gmstDeg)
}

// ICLongitude is the anti-culmination meridian, opposite the MC.
func ICLongitude(raDeg, gmstDeg float64) float64 {
	return transform.WrapLon(MCLongitude(raDeg, gmstDeg) + 180)
}

// Longitudes computes both meridians for a body from its ecliptic position.
func Longitudes(body domain.Body, instant domain.Instant) (mc, ic float64) {
	ra, _ := transform.EclipticToEquatorial(
		body.Position.Longitude, body.Position.Latitude, transform.ObliquityDeg)
	return MCLongitude(ra, instant.GMSTDeg), ICLongitude(ra, instant.GMSTDeg)
}

// MeridianGeometry builds the vertical LineString for a meridian longitude.
func MeridianGeometry(lon float64) domain.Geometry {
	return domain.Geometry{
		Type: domain.GeomLineString,
		Line: []domain.LonLat{
			{Lon: lon, Lat: DrawLatMin},
			{Lon: lon, Lat: DrawLatMax},
		},
	}
}
