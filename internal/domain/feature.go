package domain

import (
	"encoding/json"
	"fmt"
)

// LineType labels the angular line a feature represents.
type LineType string

const (
	LineAC      LineType = "AC"
	LineDC      LineType = "DC"
	LineMC      LineType = "MC"
	LineIC      LineType = "IC"
	LineHorizon LineType = "HORIZON"
	LineAspect  LineType = "ASPECT"
)

// FeatureCategory is the coarse grouping consumers filter on.
type FeatureCategory string

const (
	FeaturePlanet      FeatureCategory = "planet"
	FeatureAspect      FeatureCategory = "aspect"
	FeatureParans      FeatureCategory = "parans"
	FeatureFixedStar   FeatureCategory = "fixed_star"
	FeatureHermeticLot FeatureCategory = "hermetic_lot"
)

// LayerType identifies which chart pass produced a feature.
type LayerType string

const (
	LayerNatal    LayerType = "natal"
	LayerTransit  LayerType = "transit"
	LayerCCG      LayerType = "CCG"
	LayerHDDesign LayerType = "HD_DESIGN"
)

// ValidLayer reports whether l is a known layer type.
func ValidLayer(l LayerType) bool {
	switch l {
	case LayerNatal, LayerTransit, LayerCCG, LayerHDDesign:
		return true
	}
	return false
}

// Geometry is the GeoJSON geometry of a feature. Exactly one of Line,
// MultiLine, or Point is set, selected by Type.
type Geometry struct {
	Type      string
	Line      []LonLat
	MultiLine [][]LonLat
	Point     LonLat
}

const (
	GeomLineString      = "LineString"
	GeomMultiLineString = "MultiLineString"
	GeomPoint           = "Point"
)

// MarshalJSON emits the standard GeoJSON geometry object with [lon, lat]
// coordinate pairs.
func (g Geometry) MarshalJSON() ([]byte, error) {
	var coords any
	switch g.Type {
	case GeomLineString:
		coords = lonLatPairs(g.Line)
	case GeomMultiLineString:
		segs := make([][][2]float64, len(g.MultiLine))
		for i, seg := range g.MultiLine {
			segs[i] = lonLatPairs(seg)
		}
		coords = segs
	case GeomPoint:
		coords = [2]float64{g.Point.Lon, g.Point.Lat}
	default:
		return nil, fmt.Errorf("unknown geometry type %q", g.Type)
	}
	return json.Marshal(struct {
		Type        string `json:"type"`
		Coordinates any    `json:"coordinates"`
	}{g.Type, coords})
}

func lonLatPairs(pts []LonLat) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.Lon, p.Lat}
	}
	return out
}

// ACDCIndices marks where the AC half of a combined horizon polyline ends
// and the DC half begins.
type ACDCIndices struct {
	ACEnd   int `json:"ac_end"`
	DCStart int `json:"dc_start"`
}

// Segment labels a sub-run of a horizon polyline, used when the line crosses
// the antimeridian and for AC/DC labeling.
type Segment struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Properties is the closed set of per-category feature property variants.
// Each variant carries only the fields relevant to its category and
// serializes to the documented GeoJSON property shape.
type Properties interface {
	featureProperties()
}

// HorizonProps describes a combined AC/DC horizon polyline.
type HorizonProps struct {
	Planet      string          `json:"planet"`
	LineType    LineType        `json:"line_type"`
	Category    FeatureCategory `json:"category"`
	Layer       LayerType       `json:"layer"`
	ACDCIndices ACDCIndices     `json:"ac_dc_indices"`
	Segments    []Segment       `json:"segments"`
	GateLine    string          `json:"hd_gate_line,omitempty"`
	GateName    string          `json:"hd_gate_name,omitempty"`
	Label       string          `json:"label"`
}

// MeridianProps describes an MC or IC meridian line.
type MeridianProps struct {
	Planet   string          `json:"planet"`
	LineType LineType        `json:"line_type"`
	Category FeatureCategory `json:"category"`
	Layer    LayerType       `json:"layer"`
	GateLine string          `json:"hd_gate_line,omitempty"`
	GateName string          `json:"hd_gate_name,omitempty"`
	Label    string          `json:"label"`
}

// AspectProps describes an aspect line from a body to the MC or AC angle.
type AspectProps struct {
	Planet   string          `json:"planet"`
	LineType LineType        `json:"line_type"`
	Category FeatureCategory `json:"category"`
	Layer    LayerType       `json:"layer"`
	Aspect   string          `json:"aspect"`
	Angle    float64         `json:"angle"`
	To       string          `json:"to"`
	Label    string          `json:"label"`
}

// ParanProps describes a paran crossing latitude line.
type ParanProps struct {
	Category    FeatureCategory `json:"category"`
	Layer       LayerType       `json:"layer"`
	Latitude    float64         `json:"intersection_lat"`
	SourceLines [2]string       `json:"source_lines"`
	Label       string          `json:"label"`
}

// StarProps describes a fixed-star point.
type StarProps struct {
	Star      string          `json:"star"`
	Category  FeatureCategory `json:"category"`
	Layer     LayerType       `json:"layer"`
	Magnitude float64         `json:"magnitude"`
	Label     string          `json:"label"`
}

// LotProps describes a hermetic-lot meridian line.
type LotProps struct {
	Lot      string          `json:"planet"`
	LineType LineType        `json:"line_type"`
	Category FeatureCategory `json:"category"`
	Layer    LayerType       `json:"layer"`
	Sign     string          `json:"sign"`
	Position float64         `json:"position"`
	GateLine string          `json:"hd_gate_line,omitempty"`
	GateName string          `json:"hd_gate_name,omitempty"`
	Label    string          `json:"label"`
}

func (HorizonProps) featureProperties()  {}
func (MeridianProps) featureProperties() {}
func (AspectProps) featureProperties()   {}
func (ParanProps) featureProperties()    {}
func (StarProps) featureProperties()     {}
func (LotProps) featureProperties()      {}

// Feature is the emitted geometry unit. Read-only after assembly.
type Feature struct {
	Geometry Geometry
	Props    Properties
}

// MarshalJSON emits a GeoJSON Feature object.
func (f Feature) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string     `json:"type"`
		Geometry   Geometry   `json:"geometry"`
		Properties Properties `json:"properties"`
	}{"Feature", f.Geometry, f.Props})
}

// BodyError records a per-body failure that did not abort the request.
type BodyError struct {
	Body  string `json:"body"`
	Error string `json:"error"`
}

// HumanDesignMeta is the response metadata for HD_DESIGN layers.
type HumanDesignMeta struct {
	DesignDatetime    string  `json:"design_datetime"`
	Algorithm         string  `json:"algorithm"`
	Iterations        int     `json:"iterations"`
	PrecisionAchieved float64 `json:"precision_achieved"`
	DaysDifference    float64 `json:"days_difference"`
	Converged         bool    `json:"converged"`
}

// FeatureCollection is the output contract of the pipeline: a GeoJSON
// FeatureCollection plus foreign members for layer tagging, per-body errors,
// and Human Design metadata.
type FeatureCollection struct {
	ID          string           `json:"id"`
	Layer       LayerType        `json:"layer_type"`
	Features    []Feature        `json:"features"`
	BodyErrors  []BodyError      `json:"errors,omitempty"`
	HumanDesign *HumanDesignMeta `json:"human_design,omitempty"`
}

// MarshalJSON emits a GeoJSON FeatureCollection with foreign members.
func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	type alias FeatureCollection
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"FeatureCollection", alias(fc)})
}
