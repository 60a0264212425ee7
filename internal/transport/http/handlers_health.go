package httptransport

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"recruit/pkg/platform/httputil"
	"recruit/pkg/requestcontext"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checks map[string]HealthCheck
	logger *slog.Logger
}

func NewHealthHandler(checks map[string]HealthCheck, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/healthz", h.HandleLive)
	r.Get("/readyz", h.HandleReady)
}

// HandleLive handles GET /healthz. It never touches dependencies.
func (h *HealthHandler) HandleLive(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleReady handles GET /readyz by running every registered check.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = "unavailable"
			h.logger.WarnContext(ctx, "readiness check failed",
				"check", name,
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			continue
		}
		results[name] = "ok"
	}
	httputil.WriteJSON(w, status, results)
}
