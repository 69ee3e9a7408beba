// Package horizon produces the AC/DC curve for a body: the locus of
// geographic points where the body sits exactly on the local horizon at the
// chart instant.
package horizon

import (
	"math"

	"meridian/internal/astro/transform"
	"meridian/internal/domain"
)

const (
	// Sampled latitude band. Bodies pushed circumpolar beyond this are
	// simply omitted at those latitudes.
	latMin  = -66.0
	latMax  = 66.0
	latStep = 0.5

	// Longitude tolerance for the altitude root refinement.
	lonTolerance = 1e-4
)

// Solver computes horizon curves from a body's equatorial coordinates and
// the instant's sidereal time. Stateless; safe for concurrent use.
type Solver struct{}

func NewSolver() *Solver { return &Solver{} }

// Curve returns the combined AC/DC polyline for a body. The AC half runs
// south to north on the rising branch, then the DC half north to south on
// the setting branch, dropping the duplicate join point. Longitudes are
// canonical [-180, 180); the antimeridian seam is the assembler's concern.
//
// A fully circumpolar body yields an empty curve, which is degenerate
// geometry rather than an error.
func (s *Solver) Curve(body domain.Body, instant domain.Instant) domain.HorizonCurve {
	raDeg, decDeg := transform.EclipticToEquatorial(
		body.Position.Longitude, body.Position.Latitude, transform.ObliquityDeg)
	return s.curveEquatorial(body, raDeg, decDeg, instant.GMSTDeg)
}

func (s *Solver) curveEquatorial(body domain.Body, raDeg, decDeg, gmstDeg float64) domain.HorizonCurve {
	if math.Abs(decDeg) >= 90 {
		return domain.HorizonCurve{Body: body, ACEnd: -1, DCStart: 0}
	}

	var rising, setting []domain.LonLat
	for lat := latMin; lat <= latMax+latStep/2; lat += latStep {
		h0, ok := horizonHourAngle(lat, decDeg)
		if !ok {
			continue // circumpolar at this latitude: curve is shorter, not an error
		}
		lonRise := refineRoot(raDeg, decDeg, gmstDeg, lat, transform.WrapLon(raDeg-h0-gmstDeg))
		lonSet := refineRoot(raDeg, decDeg, gmstDeg, lat, transform.WrapLon(raDeg+h0-gmstDeg))

		rising = append(rising, domain.LonLat{Lon: lonRise, Lat: lat})
		setting = append(setting, domain.LonLat{Lon: lonSet, Lat: lat})
	}

	if len(rising) == 0 {
		return domain.HorizonCurve{Body: body, ACEnd: -1, DCStart: 0}
	}

	// AC south->north, then DC north->south, skipping the shared join point.
	points := make([]domain.LonLat, 0, len(rising)+len(setting))
	points = append(points, rising...)
	for i := len(setting) - 2; i >= 0; i-- {
		points = append(points, setting[i])
	}

	acEnd := len(rising) - 1
	return domain.HorizonCurve{
		Body:    body,
		Points:  points,
		ACEnd:   acEnd,
		DCStart: acEnd + 1,
	}
}

// horizonHourAngle returns the hour angle magnitude (degrees) at which a
// body with declination dec crosses the horizon at latitude lat:
// cos H0 = -tan(lat) tan(dec). Reports false when no crossing exists.
func horizonHourAngle(latDeg, decDeg float64) (float64, bool) {
	cosH := -math.Tan(latDeg*math.Pi/180) * math.Tan(decDeg*math.Pi/180)
	if math.Abs(cosH) > 1 {
		return 0, false
	}
	return math.Acos(cosH) * 180 / math.Pi, true
}

// refineRoot polishes a closed-form seed longitude with bisection on the
// altitude function until the bracket is below lonTolerance. The altitude is
// monotonic in the hour angle near the horizon crossing, so a narrow bracket
// around the seed always contains exactly one root.
func refineRoot(raDeg, decDeg, gmstDeg, latDeg, seedLon float64) float64 {
	alt := func(lon float64) float64 {
		a, _ := transform.EquatorialToHorizontal(raDeg, decDeg, gmstDeg+lon, latDeg)
		return a
	}

	lo, hi := seedLon-0.01, seedLon+0.01
	flo, fhi := alt(lo), alt(hi)
	for grow := 0; flo*fhi > 0 && grow < 8; grow++ {
		lo -= 0.05
		hi += 0.05
		flo, fhi = alt(lo), alt(hi)
	}
	if flo*fhi > 0 {
		// No bracket: the closed-form seed is already the best answer.
		return transform.WrapLon(seedLon)
	}

	for hi-lo > lonTolerance {
		mid := (lo + hi) / 2
		if fm := alt(mid); flo*fm <= 0 {
			hi = mid
		} else {
			lo, flo = mid, fm
		}
	}
	return transform.WrapLon((lo + hi) / 2)
}

// LineFunc parameterizes one branch of a curve as longitude(latitude), for
// the paran solver. ok is false where the branch is undefined (circumpolar).
type LineFunc func(latDeg float64) (lonDeg float64, ok bool)

// RisingLine returns the AC branch of a body's horizon locus in closed form.
func RisingLine(raDeg, decDeg, gmstDeg float64) LineFunc {
	return func(lat float64) (float64, bool) {
		h0, ok := horizonHourAngle(lat, decDeg)
		if !ok {
			return 0, false
		}
		return transform.WrapLon(raDeg - h0 - gmstDeg), true
	}
}

// SettingLine returns the DC branch of a body's horizon locus in closed form.
func SettingLine(raDeg, decDeg, gmstDeg float64) LineFunc {
	return func(lat float64) (float64, bool) {
		h0, ok := horizonHourAngle(lat, decDeg)
		if !ok {
			return 0, false
		}
		return transform.WrapLon(raDeg + h0 - gmstDeg), true
	}
}
