// Package lots computes hermetic lots (Arabic parts): derived ecliptic
// longitudes built from fixed arithmetic over existing body positions, with
// day/night formula swaps keyed on chart sect.
package lots

import (
	"meridian/internal/astro/transform"
	"meridian/internal/domain"
)

// Lot is one computed hermetic lot, ready to be fed through the meridian
// builder as a synthetic zero-latitude body.
type Lot struct {
	Name      string
	Longitude float64
	Sign      string
	Position  float64 // degrees within the sign
}

var zodiacSigns = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// IsDayChart reports whether the Sun is above the horizon. The ascendant
// sweeps from the Sun's longitude at sunrise to its opposition at sunset, so
// the chart is diurnal while asc leads the Sun by less than a half-turn.
func IsDayChart(sunLon, ascLon float64) bool {
	diff := transform.NormalizeDeg(ascLon - sunLon)
	return diff < 180
}

// formula describes one lot as asc + (first - second), with first/second
// swapped for night charts.
type formula struct {
	name   string
	first  domain.BodyID
	second domain.BodyID
}

// The classical seven, in traditional order.
var formulas = []formula{
	{"Fortune", domain.BodyMoon, domain.BodySun},
	{"Spirit", domain.BodySun, domain.BodyMoon},
	{"Eros", domain.BodyVenus, domain.BodySun},
	{"Necessity", domain.BodySaturn, domain.BodySun},
	{"Victory", domain.BodyJupiter, domain.BodySun},
	{"Courage", domain.BodyMars, domain.BodySun},
	{"Nemesis", domain.BodyMercury, domain.BodySun},
}

// Calculate derives the configured lots from body longitudes and the
// ascendant. Lots whose source bodies are missing are skipped; a partial
// body set yields a partial lot set, not an error.
func Calculate(longitudes map[domain.BodyID]float64, ascLon float64) []Lot {
	sunLon, haveSun := longitudes[domain.BodySun]
	if !haveSun {
		return nil
	}
	day := IsDayChart(sunLon, ascLon)

	var out []Lot
	for _, f := range formulas {
		first, ok1 := longitudes[f.first]
		second, ok2 := longitudes[f.second]
		if !ok1 || !ok2 {
			continue
		}
		if !day {
			first, second = second, first
		}
		lon := transform.NormalizeDeg(ascLon + first - second)
		sign, pos := signAndPosition(lon)
		out = append(out, Lot{
			Name:      "Lot of " + f.name,
			Longitude: lon,
			Sign:      sign,
			Position:  pos,
		})
	}
	return out
}

func signAndPosition(lon float64) (string, float64) {
	idx := int(lon/30) % 12
	if idx < 0 {
		idx += 12
	}
	return zodiacSigns[idx], lon - float64(idx)*30
}
