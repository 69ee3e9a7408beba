package chart

import (
	"fmt"
	"math"

	"meridian/internal/astro/aspect"
	"meridian/internal/astro/lots"
	"meridian/internal/astro/meridianline"
	"meridian/internal/astro/paran"
	"meridian/internal/astro/stars"
	"meridian/internal/domain"
	"meridian/internal/humandesign"
)

// assemble builds the feature collection in canonical order: meridians and
// horizon curves per body, then lots, then stars, then aspects, then parans.
// The order is part of the output contract; consumers and the cache rely on
// identical requests producing identical bytes.
func (s *Service) assemble(
	layer domain.LayerType,
	opts domain.ChartOptions,
	bodies []domain.BodyID,
	results map[domain.BodyID]*bodyResult,
	events []domain.ParanEvent,
	lotList []lots.Lot,
	starList []stars.Star,
	instant domain.Instant,
) *domain.FeatureCollection {
	fc := &domain.FeatureCollection{
		Layer:    layer,
		Features: []domain.Feature{},
	}

	for _, id := range bodies {
		r := results[id]
		if r == nil {
			continue
		}
		name := featureName(r.body.Name, layer)
		gate := gatePlacement(r.body.Position.Longitude, layer)
		if opts.IncludeICMC {
			fc.Features = append(fc.Features,
				meridianFeature(name, domain.LineMC, r.mcLon, layer, gate),
				meridianFeature(name, domain.LineIC, r.icLon, layer, gate))
		}
		if opts.IncludeACDC && !r.curve.Empty() {
			fc.Features = append(fc.Features,
				horizonFeature(name, domain.FeaturePlanet, r.curve, layer, gate))
		}
	}

	if opts.IncludeHermeticLots {
		for _, lot := range lotList {
			fc.Features = append(fc.Features, s.lotFeatures(lot, instant, layer)...)
		}
	}

	if opts.IncludeFixedStars {
		for _, st := range starList {
			fc.Features = append(fc.Features, starFeature(st, layer))
		}
	}

	if opts.IncludeAspects {
		for _, id := range bodies {
			r := results[id]
			if r == nil {
				continue
			}
			name := featureName(r.body.Name, layer)
			for _, line := range r.mcAspects {
				fc.Features = append(fc.Features, aspectMCFeature(name, line, layer))
			}
			for _, line := range r.acAspects {
				fc.Features = append(fc.Features, aspectACFeature(name, line, layer))
			}
		}
	}

	if opts.IncludeParans {
		for _, e := range events {
			fc.Features = append(fc.Features, paranFeature(e, layer))
		}
	}

	return fc
}

// featureName suffixes body names on the Human Design pass so design lines
// are distinguishable from natal lines when layers are overlaid.
func featureName(name string, layer domain.LayerType) string {
	if layer == domain.LayerHDDesign {
		return name + " HD"
	}
	return name
}

// gatePlacement resolves the Human Design gate covering a longitude. Gates
// are only carried on the design layer; the zero value leaves the JSON
// fields empty everywhere else.
func gatePlacement(lonDeg float64, layer domain.LayerType) humandesign.GatePlacement {
	if layer != domain.LayerHDDesign {
		return humandesign.GatePlacement{}
	}
	return humandesign.GateAt(lonDeg)
}

// gateLabel renders the gate.line notation, or "" for the zero placement.
func gateLabel(gate humandesign.GatePlacement) string {
	if gate.Gate == 0 {
		return ""
	}
	return gate.Label()
}

// splitAntimeridian cuts a polyline wherever consecutive points jump more
// than 180 degrees of longitude, so renderers never draw a seam-crossing
// segment across the whole map.
func splitAntimeridian(pts []domain.LonLat) [][]domain.LonLat {
	var segs [][]domain.LonLat
	start := 0
	for i := 1; i < len(pts); i++ {
		if math.Abs(pts[i].Lon-pts[i-1].Lon) > 180 {
			segs = append(segs, pts[start:i])
			start = i
		}
	}
	return append(segs, pts[start:])
}

// lineGeometry renders a polyline as a LineString, or a MultiLineString when
// the antimeridian forces a split.
func lineGeometry(pts []domain.LonLat) domain.Geometry {
	segs := splitAntimeridian(pts)
	if len(segs) == 1 {
		return domain.Geometry{Type: domain.GeomLineString, Line: segs[0]}
	}
	return domain.Geometry{Type: domain.GeomMultiLineString, MultiLine: segs}
}

func horizonFeature(name string, category domain.FeatureCategory, curve domain.HorizonCurve, layer domain.LayerType, gate humandesign.GatePlacement) domain.Feature {
	var segments []domain.Segment
	if curve.ACEnd >= 0 {
		segments = append(segments, domain.Segment{Label: "AC", Start: 0, End: curve.ACEnd})
	}
	if curve.DCStart < len(curve.Points) {
		segments = append(segments, domain.Segment{Label: "DC", Start: curve.DCStart, End: len(curve.Points) - 1})
	}
	return domain.Feature{
		Geometry: lineGeometry(curve.Points),
		Props: domain.HorizonProps{
			Planet:      name,
			LineType:    domain.LineHorizon,
			Category:    category,
			Layer:       layer,
			ACDCIndices: domain.ACDCIndices{ACEnd: curve.ACEnd, DCStart: curve.DCStart},
			Segments:    segments,
			GateLine:    gateLabel(gate),
			GateName:    gate.Name,
			Label:       name + " AC/DC",
		},
	}
}

func meridianFeature(name string, lineType domain.LineType, lon float64, layer domain.LayerType, gate humandesign.GatePlacement) domain.Feature {
	return domain.Feature{
		Geometry: meridianline.MeridianGeometry(lon),
		Props: domain.MeridianProps{
			Planet:   name,
			LineType: lineType,
			Category: domain.FeaturePlanet,
			Layer:    layer,
			GateLine: gateLabel(gate),
			GateName: gate.Name,
			Label:    fmt.Sprintf("%s %s", name, lineType),
		},
	}
}

// lotFeatures renders one hermetic lot as a synthetic zero-latitude body:
// MC and IC meridians plus the horizon curve when one exists.
func (s *Service) lotFeatures(lot lots.Lot, instant domain.Instant, layer domain.LayerType) []domain.Feature {
	synthetic := domain.Body{
		ID:       domain.BodyID(lot.Name),
		Name:     lot.Name,
		Category: domain.CategoryLot,
		Position: domain.Position{Longitude: lot.Longitude},
	}
	name := featureName(lot.Name, layer)
	gate := gatePlacement(lot.Longitude, layer)

	mc, ic := meridianline.Longitudes(synthetic, instant)
	features := []domain.Feature{
		lotMeridianFeature(name, lot, domain.LineMC, mc, layer, gate),
		lotMeridianFeature(name, lot, domain.LineIC, ic, layer, gate),
	}

	if curve := s.horizon.Curve(synthetic, instant); !curve.Empty() {
		features = append(features,
			horizonFeature(name, domain.FeatureHermeticLot, curve, layer, gate))
	}
	return features
}

func lotMeridianFeature(name string, lot lots.Lot, lineType domain.LineType, lon float64, layer domain.LayerType, gate humandesign.GatePlacement) domain.Feature {
	return domain.Feature{
		Geometry: meridianline.MeridianGeometry(lon),
		Props: domain.LotProps{
			Lot:      name,
			LineType: lineType,
			Category: domain.FeatureHermeticLot,
			Layer:    layer,
			Sign:     lot.Sign,
			Position: lot.Position,
			GateLine: gateLabel(gate),
			GateName: gate.Name,
			Label:    fmt.Sprintf("%s %s", name, lineType),
		},
	}
}

func starFeature(st stars.Star, layer domain.LayerType) domain.Feature {
	return domain.Feature{
		Geometry: stars.Point(st),
		Props: domain.StarProps{
			Star:      st.Name,
			Category:  domain.FeatureFixedStar,
			Layer:     layer,
			Magnitude: st.Magnitude,
			Label:     st.Name,
		},
	}
}

func aspectMCFeature(name string, line aspect.MCLine, layer domain.LayerType) domain.Feature {
	return domain.Feature{
		Geometry: meridianline.MeridianGeometry(line.Longitude),
		Props: domain.AspectProps{
			Planet:   name,
			LineType: domain.LineAspect,
			Category: domain.FeatureAspect,
			Layer:    layer,
			Aspect:   line.Angle.Name(),
			Angle:    float64(line.Angle),
			To:       "MC",
			Label:    line.Label,
		},
	}
}

func aspectACFeature(name string, line aspect.ACLine, layer domain.LayerType) domain.Feature {
	return domain.Feature{
		Geometry: lineGeometry(line.Points),
		Props: domain.AspectProps{
			Planet:   name,
			LineType: domain.LineAspect,
			Category: domain.FeatureAspect,
			Layer:    layer,
			Aspect:   line.Angle.Name(),
			Angle:    float64(line.Angle),
			To:       "AC",
			Label:    line.Label,
		},
	}
}

func paranFeature(e domain.ParanEvent, layer domain.LayerType) domain.Feature {
	return domain.Feature{
		Geometry: paran.LatitudeGeometry(e.Latitude),
		Props: domain.ParanProps{
			Category:    domain.FeatureParans,
			Layer:       layer,
			Latitude:    e.Latitude,
			SourceLines: e.SourceLines,
			Label:       paran.Label(e),
		},
	}
}
