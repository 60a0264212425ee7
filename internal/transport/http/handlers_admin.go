package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	submission "recruit/internal/submission/models"
	"recruit/pkg/platform/httputil"
	"recruit/pkg/requestcontext"
)

// StatsService reports submission counts.
type StatsService interface {
	Stats(ctx context.Context) (submission.Counts, error)
}

// AdminHandler exposes operator endpoints. Callers must pass the admin token
// middleware first.
type AdminHandler struct {
	stats  StatsService
	logger *slog.Logger
}

func NewAdminHandler(stats StatsService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{stats: stats, logger: logger}
}

func (h *AdminHandler) Register(r chi.Router) {
	r.Get("/admin/stats", h.HandleStats)
}

// HandleStats handles GET /admin/stats.
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	counts, err := h.stats.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load stats",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, counts)
}
