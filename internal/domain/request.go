package domain

import (
	"time"

	pkgerrors "meridian/pkg/errors"
)

// ChartOptions are the request-side filters consumed by the pipeline.
// The zero value excludes everything; use DefaultOptions for a full chart.
type ChartOptions struct {
	IncludeACDC         bool `json:"include_ac_dc"`
	IncludeICMC         bool `json:"include_ic_mc"`
	IncludeAspects      bool `json:"include_aspects"`
	IncludeParans       bool `json:"include_parans"`
	IncludeFixedStars   bool `json:"include_fixed_stars"`
	IncludeHermeticLots bool `json:"include_hermetic_lots"`
	ExtendedBodies      bool `json:"use_extended_planets"`
}

// DefaultOptions enables every feature category.
func DefaultOptions() ChartOptions {
	return ChartOptions{
		IncludeACDC:         true,
		IncludeICMC:         true,
		IncludeAspects:      true,
		IncludeParans:       true,
		IncludeFixedStars:   true,
		IncludeHermeticLots: true,
	}
}

// ChartRequest is one fully-resolved computation request: the target UTC
// instant, the geographic reference frame, and the filter options.
type ChartRequest struct {
	Instant time.Time
	Lat     float64
	Lon     float64
	Layer   LayerType
	Options ChartOptions
}

// Validate rejects malformed requests before any solver runs.
func (r ChartRequest) Validate() error {
	if r.Instant.IsZero() {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "instant is required")
	}
	if r.Lat < -90 || r.Lat > 90 {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "latitude out of range [-90, 90]")
	}
	if r.Lon < -180 || r.Lon > 180 {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "longitude out of range [-180, 180]")
	}
	if !ValidLayer(r.Layer) {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "unknown layer type")
	}
	return nil
}
