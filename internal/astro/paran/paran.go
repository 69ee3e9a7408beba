// Package paran finds the latitudes where two bodies stand on angular lines
// simultaneously: a 1-D root search over latitude on the signed
// longitude-difference between two independently parameterized curves.
package paran

import (
	"fmt"
	"math"

	"meridian/internal/astro/horizon"
	"meridian/internal/astro/transform"
	"meridian/internal/domain"
)

const (
	latMin  = -66.0
	latMax  = 66.0
	latStep = 0.5

	// Latitude tolerance of the bisection refinement.
	latTolerance = 1e-3
)

// Line is one named angular line: a body/angle identifier like "Sun_AC" and
// its longitude-of-latitude parameterization.
type Line struct {
	ID string
	Fn horizon.LineFunc
}

// ConstantLine wraps a fixed-longitude meridian (MC/IC) as a Line function.
func ConstantLine(id string, lon float64) Line {
	return Line{ID: id, Fn: func(float64) (float64, bool) { return lon, true }}
}

// NamedLine builds a Line for a horizon branch.
func NamedLine(id string, fn horizon.LineFunc) Line {
	return Line{ID: id, Fn: fn}
}

// Solver scans latitude for crossings between line pairs. Stateless.
type Solver struct{}

func NewSolver() *Solver { return &Solver{} }

// Crossings returns every latitude in the sampled band where the two lines'
// longitudes coincide. All sign changes are refined and reported, not just
// the first. The search is symmetric: Crossings(a, b) and Crossings(b, a)
// yield the same latitude set.
func (s *Solver) Crossings(a, b Line) []domain.ParanEvent {
	diff := func(lat float64) (float64, bool) {
		lonA, okA := a.Fn(lat)
		if !okA {
			return 0, false
		}
		lonB, okB := b.Fn(lat)
		if !okB {
			return 0, false
		}
		return transform.SignedDelta(lonA, lonB), true
	}

	var events []domain.ParanEvent
	prevLat := math.NaN()
	prevDiff := 0.0
	havePrev := false

	for lat := latMin; lat <= latMax+latStep/2; lat += latStep {
		d, ok := diff(lat)
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			switch {
			case d == 0:
				events = append(events, event(a, b, lat))
			case prevDiff*d < 0 && math.Abs(d-prevDiff) < 180:
				// Sign change without wrapping through the antimeridian.
				root := bisect(diff, prevLat, lat, prevDiff)
				events = append(events, event(a, b, root))
			}
		}
		prevLat, prevDiff, havePrev = lat, d, true
	}
	return events
}

func bisect(diff func(float64) (float64, bool), lo, hi, flo float64) float64 {
	for hi-lo > latTolerance {
		mid := (lo + hi) / 2
		fm, ok := diff(mid)
		if !ok {
			break
		}
		if flo*fm <= 0 {
			hi = mid
		} else {
			lo, flo = mid, fm
		}
	}
	return (lo + hi) / 2
}

func event(a, b Line, lat float64) domain.ParanEvent {
	return domain.ParanEvent{
		Latitude:    lat,
		SourceLines: [2]string{a.ID, b.ID},
	}
}

// Label renders the human-readable paran description.
func Label(e domain.ParanEvent) string {
	return fmt.Sprintf("%s crossing %s", e.SourceLines[0], e.SourceLines[1])
}

// LatitudeGeometry draws the constant-latitude crossing line across the
// globe, the shape consumers plot for a paran.
func LatitudeGeometry(lat float64) domain.Geometry {
	return domain.Geometry{
		Type: domain.GeomLineString,
		Line: []domain.LonLat{{Lon: -180, Lat: lat}, {Lon: 180, Lat: lat}},
	}
}
