package ephemeris

import (
	"context"
	"math"
	"time"

	"meridian/internal/astro/transform"
	"meridian/internal/domain"
)

// AnalyticProvider computes low-precision ecliptic positions from mean
// orbital elements. It keeps the engine runnable and testable without
// external ephemeris data files; deployments needing arc-second accuracy
// wire a real provider instead.
//
// Accuracy is on the order of arc-minutes for the classical planets, which
// is well inside the line solvers' sampling resolution.
type AnalyticProvider struct{}

func NewAnalyticProvider() *AnalyticProvider { return &AnalyticProvider{} }

func (p *AnalyticProvider) Position(_ context.Context, id domain.BodyID, utc time.Time) (domain.Position, error) {
	jd := domain.JulianDay(utc)
	switch id {
	case domain.BodySun:
		return sunPosition(jd), nil
	case domain.BodyMoon:
		return moonPosition(jd), nil
	case domain.BodyNorthNode:
		return domain.Position{Longitude: meanLunarNode(jd), Distance: 0.00257}, nil
	case domain.BodySouthNode:
		return domain.Position{Longitude: transform.NormalizeDeg(meanLunarNode(jd) + 180), Distance: 0.00257}, nil
	case domain.BodyLilith:
		return domain.Position{Longitude: meanLunarApogee(jd), Distance: 0.00271}, nil
	}
	if el, ok := planetElements[id]; ok {
		return keplerPosition(el, jd), nil
	}
	return domain.Position{}, Unavailable(id, nil)
}

// elements are Keplerian mean elements at J2000 plus per-century rates:
// semi-major axis (au), eccentricity, inclination, mean longitude,
// longitude of perihelion, longitude of ascending node (degrees).
type elements struct {
	a, aDot   float64
	e, eDot   float64
	i, iDot   float64
	l, lDot   float64
	pi, piDot float64
	om, omDot float64
}

var earthElements = elements{
	1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0, 0,
}

var planetElements = map[domain.BodyID]elements{
	domain.BodyMercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	domain.BodyVenus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	domain.BodyMars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	domain.BodyJupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	domain.BodySaturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	domain.BodyUranus: {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	domain.BodyNeptune: {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	domain.BodyPluto: {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

const degToRad = math.Pi / 180

// heliocentric returns rectangular ecliptic heliocentric coordinates (au).
func heliocentric(el elements, jd float64) (x, y, z float64) {
	t := (jd - 2451545.0) / 36525.0

	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	inc := (el.i + el.iDot*t) * degToRad
	l := el.l + el.lDot*t
	pi := el.pi + el.piDot*t
	om := el.om + el.omDot*t

	m := transform.NormalizeDeg(l-pi) * degToRad
	w := (pi - om) * degToRad
	omR := om * degToRad

	// Kepler's equation, Newton iteration.
	ecc := e
	eAnom := m + ecc*math.Sin(m)
	for iter := 0; iter < 10; iter++ {
		delta := (eAnom - ecc*math.Sin(eAnom) - m) / (1 - ecc*math.Cos(eAnom))
		eAnom -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}

	xp := a * (math.Cos(eAnom) - ecc)
	yp := a * math.Sqrt(1-ecc*ecc) * math.Sin(eAnom)

	cosW, sinW := math.Cos(w), math.Sin(w)
	cosO, sinO := math.Cos(omR), math.Sin(omR)
	cosI, sinI := math.Cos(inc), math.Sin(inc)

	x = (cosW*cosO-sinW*sinO*cosI)*xp + (-sinW*cosO-cosW*sinO*cosI)*yp
	y = (cosW*sinO+sinW*cosO*cosI)*xp + (-sinW*sinO+cosW*cosO*cosI)*yp
	z = (sinW*sinI)*xp + (cosW*sinI)*yp
	return x, y, z
}

// keplerPosition converts heliocentric planet coordinates to a geocentric
// ecliptic position.
func keplerPosition(el elements, jd float64) domain.Position {
	px, py, pz := heliocentric(el, jd)
	ex, ey, ez := heliocentric(earthElements, jd)

	gx, gy, gz := px-ex, py-ey, pz-ez
	r := math.Sqrt(gx*gx + gy*gy + gz*gz)

	lon := transform.NormalizeDeg(math.Atan2(gy, gx) / degToRad)
	lat := math.Asin(gz/r) / degToRad
	return domain.Position{Longitude: lon, Latitude: lat, Distance: r}
}

// sunPosition is the geocentric Sun: the reversed Earth vector.
func sunPosition(jd float64) domain.Position {
	ex, ey, ez := heliocentric(earthElements, jd)
	gx, gy, gz := -ex, -ey, -ez
	r := math.Sqrt(gx*gx + gy*gy + gz*gz)
	lon := transform.NormalizeDeg(math.Atan2(gy, gx) / degToRad)
	lat := math.Asin(gz/r) / degToRad
	return domain.Position{Longitude: lon, Latitude: lat, Distance: r}
}

// moonPosition uses the standard low-precision lunar series: mean longitude
// plus the principal elliptic term, and the principal latitude term.
func moonPosition(jd float64) domain.Position {
	d := jd - 2451545.0

	l := 218.316 + 13.176396*d  // mean longitude
	m := 134.963 + 13.064993*d  // mean anomaly
	f := 93.272 + 13.229350*d   // argument of latitude

	lon := transform.NormalizeDeg(l + 6.289*math.Sin(m*degToRad))
	lat := 5.128 * math.Sin(f*degToRad)
	distKm := 385001 - 20905*math.Cos(m*degToRad)

	return domain.Position{Longitude: lon, Latitude: lat, Distance: distKm / 149597870.7}
}

func meanLunarNode(jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	return transform.NormalizeDeg(125.0445479 - 1934.1362891*t)
}

func meanLunarApogee(jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	return transform.NormalizeDeg(83.3532465 + 4069.0137287*t)
}
