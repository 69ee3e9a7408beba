package httptransport

import (
	"encoding/json"
	"net/http"

	"meridian/internal/domain"
	pkgerrors "meridian/pkg/errors"
)

// handleAstrocartography computes a full chart layer. Responses are served
// from cache when possible; the X-Cache header reports which path answered.
func (h *Handler) handleAstrocartography(w http.ResponseWriter, r *http.Request) {
	var payload chartPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput, "malformed JSON body"))
		return
	}
	req, err := payload.toRequest(domain.LayerNatal)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Layer == domain.LayerHDDesign {
		// The design layer has its own endpoint; the generic one serves the
		// overlay layers only.
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput,
			"use /api/humandesign for the HD_DESIGN layer"))
		return
	}

	h.serveChart(w, r, req)
}

// handleHumanDesign computes the HD_DESIGN layer: the converger resolves the
// design instant, then the same pipeline runs at that instant with design
// metadata attached.
func (h *Handler) handleHumanDesign(w http.ResponseWriter, r *http.Request) {
	var payload chartPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput, "malformed JSON body"))
		return
	}
	payload.Layer = string(domain.LayerHDDesign)
	req, err := payload.toRequest(domain.LayerHDDesign)
	if err != nil {
		writeError(w, err)
		return
	}

	h.serveChart(w, r, req)
}

func (h *Handler) serveChart(w http.ResponseWriter, r *http.Request, req domain.ChartRequest) {
	blob, cached, err := h.charts.ComputeFeaturesJSON(r.Context(), req)
	if err != nil {
		if pkgerrors.CodeOf(err) == pkgerrors.CodeInternal {
			h.logger.Error("chart computation failed", "layer", req.Layer, "error", err)
		}
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

// handleHealth reports process liveness plus cache backend status. A degraded
// cache never fails the health check; the service computes without it.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	cacheStatus := "unconfigured"
	if h.cache != nil {
		if err := h.cache.Health(r.Context()); err != nil {
			cacheStatus = "unavailable"
		} else {
			cacheStatus = "ok"
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"cache":  cacheStatus,
	})
}
