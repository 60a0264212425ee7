package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"recruit/pkg/platform/middleware/admin"
	"recruit/pkg/platform/middleware/requesttime"
)

// HealthCheck probes one dependency for /readyz.
type HealthCheck func(ctx context.Context) error

// RouterConfig lists what the HTTP surface exposes. A nil Webhook leaves the
// webhook route unmounted (long-polling mode).
type RouterConfig struct {
	Logger     *slog.Logger
	Metrics    http.Handler
	Webhook    http.Handler
	AdminToken string
	Stats      StatsService
	Checks     map[string]HealthCheck
}

// NewRouter wires health, metrics, webhook and admin routes.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requesttime.Middleware)

	health := NewHealthHandler(cfg.Checks, logger)
	health.Register(r)

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	if cfg.Webhook != nil {
		r.Method(http.MethodPost, "/telegram/webhook", cfg.Webhook)
	}
	if cfg.Stats != nil {
		r.Group(func(r chi.Router) {
			r.Use(admin.RequireAdminToken(cfg.AdminToken, logger))
			NewAdminHandler(cfg.Stats, logger).Register(r)
		})
	}
	return r
}
