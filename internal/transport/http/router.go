// Package httptransport is the thin HTTP layer. It decodes and validates
// payloads, delegates to the chart service, and translates domain errors to
// JSON envelopes; no geometry logic lives here.
package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"meridian/internal/chart"
	pkgerrors "meridian/pkg/errors"
)

// HealthChecker reports dependency liveness; nil means the dependency is not
// configured.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler holds the transport's dependencies.
type Handler struct {
	charts *chart.Service
	cache  HealthChecker
	logger *slog.Logger
}

func NewHandler(charts *chart.Service, cache HealthChecker, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{charts: charts, cache: cache, logger: logger}
}

// NewRouter wires all public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/astrocartography", h.handleAstrocartography)
		r.Post("/humandesign", h.handleHumanDesign)
		r.Get("/health", h.handleHealth)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// writeError translates domain errors to the JSON error envelope. Unknown
// errors are reported as internal without leaking their message.
func writeError(w http.ResponseWriter, err error) {
	var se pkgerrors.ServiceError
	status := http.StatusInternalServerError
	code := pkgerrors.CodeInternal
	message := "internal error"
	if errors.As(err, &se) {
		status = pkgerrors.ToHTTPStatus(se.Code)
		code = se.Code
		message = se.Message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   string(code),
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
