package domain

import (
	"math"
	"time"
)

// Instant is the single time axis all solvers key off: a UTC moment plus the
// derived Julian day and Greenwich mean sidereal time.
type Instant struct {
	UTC       time.Time
	JulianDay float64
	GMSTDeg   float64
}

// NewInstant derives the Julian day and GMST for a UTC moment.
func NewInstant(utc time.Time) Instant {
	jd := JulianDay(utc.UTC())
	return Instant{UTC: utc.UTC(), JulianDay: jd, GMSTDeg: gmstDeg(jd)}
}

// JulianDay converts a UTC time to a Julian day number, including the
// fractional day.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	y, m := t.Year(), int(t.Month())
	d := float64(t.Day()) +
		(float64(t.Hour())+float64(t.Minute())/60+
			(float64(t.Second())+float64(t.Nanosecond())/1e9)/3600)/24

	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) + d + float64(b) - 1524.5
}

// gmstDeg computes Greenwich mean sidereal time in degrees (IAU 1982).
func gmstDeg(jd float64) float64 {
	d := jd - 2451545.0
	t := d / 36525.0
	gmst := 280.46061837 + 360.98564736629*d +
		0.000387933*t*t - t*t*t/38710000.0
	gmst = math.Mod(gmst, 360)
	if gmst < 0 {
		gmst += 360
	}
	return gmst
}
