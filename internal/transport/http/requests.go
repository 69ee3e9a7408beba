package httptransport

import (
	"time"

	"github.com/asaskevich/govalidator"

	"meridian/internal/domain"
	pkgerrors "meridian/pkg/errors"
)

// chartPayload is the request body shared by the astrocartography and
// Human Design endpoints.
type chartPayload struct {
	Datetime string               `json:"datetime"`
	Lat      float64              `json:"lat"`
	Lon      float64              `json:"lon"`
	Layer    string               `json:"layer_type,omitempty"`
	Options  *domain.ChartOptions `json:"options,omitempty"`
}

// toRequest validates the payload and resolves it into a domain request.
// Missing options mean a full default chart, not an empty one.
func (p chartPayload) toRequest(defaultLayer domain.LayerType) (domain.ChartRequest, error) {
	if p.Datetime == "" {
		return domain.ChartRequest{}, pkgerrors.New(pkgerrors.CodeInvalidInput,
			"datetime is required")
	}
	instant, err := time.Parse(time.RFC3339, p.Datetime)
	if err != nil {
		return domain.ChartRequest{}, pkgerrors.New(pkgerrors.CodeInvalidInput,
			"datetime must be an RFC 3339 timestamp")
	}
	if !govalidator.InRangeFloat64(p.Lat, -90, 90) {
		return domain.ChartRequest{}, pkgerrors.New(pkgerrors.CodeInvalidInput,
			"lat must be in [-90, 90]")
	}
	if !govalidator.InRangeFloat64(p.Lon, -180, 180) {
		return domain.ChartRequest{}, pkgerrors.New(pkgerrors.CodeInvalidInput,
			"lon must be in [-180, 180]")
	}

	layer := defaultLayer
	if p.Layer != "" {
		layer = domain.LayerType(p.Layer)
		if !domain.ValidLayer(layer) {
			return domain.ChartRequest{}, pkgerrors.New(pkgerrors.CodeInvalidInput,
				"unknown layer_type")
		}
	}

	opts := domain.DefaultOptions()
	if p.Options != nil {
		opts = *p.Options
	}

	return domain.ChartRequest{
		Instant: instant.UTC(),
		Lat:     p.Lat,
		Lon:     p.Lon,
		Layer:   layer,
		Options: opts,
	}, nil
}
