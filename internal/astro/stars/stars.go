// Package stars places fixed-star points from a built-in catalog. Star
// positions are effectively constant at chart timescales; precision and
// catalog-lookup failure modes are shared with body processing.
package stars

import (
	"fmt"

	"meridian/internal/astro/transform"
	"meridian/internal/domain"
	pkgerrors "meridian/pkg/errors"
)

// Star is one catalog entry: J2000 ecliptic coordinates and visual
// magnitude.
type Star struct {
	Name      string
	Longitude float64
	Latitude  float64
	Magnitude float64
}

// Catalog is the default star set, matching the stars the chart renders.
var Catalog = []Star{
	{"Regulus", 149.83, 0.46, 1.35},
	{"Spica", 203.83, -2.06, 0.97},
	{"Antares", 249.76, -4.57, 1.06},
	{"Aldebaran", 69.79, -5.47, 0.85},
	{"Algol", 56.17, 22.43, 2.09},
	{"Fomalhaut", 333.87, -21.14, 1.16},
	{"Sirius", 104.08, -39.61, -1.46},
	{"Procyon", 115.78, -16.02, 0.38},
	{"Vega", 285.32, 61.73, 0.03},
	{"Altair", 301.78, 29.30, 0.77},
	{"Betelgeuse", 88.75, -16.03, 0.50},
	{"Pollux", 113.22, 6.68, 1.14},
	{"Galactic Center", 266.85, -5.61, 0},
}

// DefaultNames lists the stars charts render by default, in catalog order.
var DefaultNames = func() []string {
	names := make([]string, len(Catalog))
	for i, s := range Catalog {
		names[i] = s.Name
	}
	return names
}()

var byName = func() map[string]Star {
	m := make(map[string]Star, len(Catalog))
	for _, s := range Catalog {
		m[s.Name] = s
	}
	return m
}()

// Lookup resolves a star by catalog name.
func Lookup(name string) (Star, error) {
	s, ok := byName[name]
	if !ok {
		return Star{}, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("fixed star %q not in catalog", name))
	}
	return s, nil
}

// Point returns the GeoJSON point geometry for a star, longitude wrapped to
// the canonical range.
func Point(s Star) domain.Geometry {
	return domain.Geometry{
		Type:  domain.GeomPoint,
		Point: domain.LonLat{Lon: transform.WrapLon(s.Longitude), Lat: s.Latitude},
	}
}
