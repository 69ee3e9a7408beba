// Package aspect builds angle-aspect lines: the loci where a body stands at
// a fixed aspect angle to the local MC or AC. MC aspects are closed-form
// meridians; AC aspects re-run the horizon solver on an offset synthetic
// position.
package aspect

import (
	"fmt"

	"meridian/internal/astro/horizon"
	"meridian/internal/astro/transform"
	"meridian/internal/domain"
)

// Angle is one of the supported aspect angles, degrees.
type Angle float64

const (
	Conjunction Angle = 0
	Sextile     Angle = 60
	Square      Angle = 90
	Trine       Angle = 120
	Quincunx    Angle = 150
	Opposition  Angle = 180
)

// DefaultAngles matches the aspect set the chart draws by default.
var DefaultAngles = []Angle{Sextile, Square, Trine}

// AllAngles is the full supported set.
var AllAngles = []Angle{Conjunction, Sextile, Square, Trine, Quincunx, Opposition}

var angleNames = map[Angle]string{
	Conjunction: "conjunction",
	Sextile:     "sextile",
	Square:      "square",
	Trine:       "trine",
	Quincunx:    "quincunx",
	Opposition:  "opposition",
}

// Name returns the label for an aspect angle.
func (a Angle) Name() string {
	if n, ok := angleNames[a]; ok {
		return n
	}
	return fmt.Sprintf("%g°", float64(a))
}

// doubleValued reports whether +a and -a offsets produce distinct lines.
func (a Angle) doubleValued() bool { return a != Conjunction && a != Opposition }

// MCLine is one aspect meridian.
type MCLine struct {
	Angle     Angle
	Longitude float64
	Label     string
}

// ACLine is one aspect curve against the ascendant.
type ACLine struct {
	Angle  Angle
	Points []domain.LonLat
	Label  string
}

// Builder derives aspect lines for bodies. Stateless.
type Builder struct {
	horizon *horizon.Solver
}

func NewBuilder() *Builder {
	return &Builder{horizon: horizon.NewSolver()}
}

// MCLines returns the meridians where the body makes each requested aspect
// to the local MC. Double-valued angles yield two lines (+a and -a); 0 and
// 180 yield one.
func (b *Builder) MCLines(body domain.Body, instant domain.Instant, angles []Angle) []MCLine {
	var out []MCLine
	for _, a := range angles {
		offsets := []float64{float64(a)}
		if a.doubleValued() {
			offsets = append(offsets, -float64(a))
		}
		for _, off := range offsets {
			target := transform.NormalizeDeg(body.Position.Longitude - off)
			lst := transform.LSTForMeridianLongitude(target, transform.ObliquityDeg)
			out = append(out, MCLine{
				Angle:     a,
				Longitude: transform.WrapLon(lst - instant.GMSTDeg),
				Label:     fmt.Sprintf("%s %s MC", body.Name, a.Name()),
			})
		}
	}
	return out
}

// ACLines returns the curves where the body makes each requested aspect to
// the local ascendant. Each offset shifts the body's ecliptic longitude and
// takes the rising half of the shifted horizon locus: the ascendant equals
// the target longitude exactly where the synthetic point rises.
func (b *Builder) ACLines(body domain.Body, instant domain.Instant, angles []Angle) []ACLine {
	var out []ACLine
	for _, a := range angles {
		offsets := []float64{float64(a)}
		if a.doubleValued() {
			offsets = append(offsets, -float64(a))
		}
		for _, off := range offsets {
			synthetic := domain.Body{
				ID:       body.ID,
				Name:     body.Name,
				Category: body.Category,
				Position: domain.Position{
					Longitude: transform.NormalizeDeg(body.Position.Longitude - off),
				},
			}
			curve := b.horizon.Curve(synthetic, instant)
			ac := curve.ACPoints()
			if len(ac) < 2 {
				continue // out of the sampled latitude range at this offset
			}
			pts := make([]domain.LonLat, len(ac))
			copy(pts, ac)
			out = append(out, ACLine{
				Angle:  a,
				Points: pts,
				Label:  fmt.Sprintf("%s %s AC", body.Name, a.Name()),
			})
		}
	}
	return out
}
