package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Tender/internal/config"
	"github.com/MikeSquared-Agency/Tender/internal/hermes"
	"github.com/MikeSquared-Agency/Tender/internal/store"
)

func NewRouter(s store.Store, h hermes.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Server.RateLimitPerSec))

	templates := NewTemplatesHandler(s, h, cfg.Scoring.WeightTolerance, logger)
	scores := NewScoresHandler(s, h, logger)
	comparisons := NewComparisonsHandler(s, h, cfg.Comparison.Weights.MetricWeights(), logger)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(UserIDMiddleware)

		r.Get("/templates", templates.List)
		r.Get("/templates/{id}", templates.Get)
		r.Post("/templates/validate", templates.Validate)

		r.Get("/proposals/{id}/scores", scores.List)
		r.Put("/proposals/{id}/scores/{criterion_id}", scores.Put)
		r.Post("/proposals/{id}/scores/{criterion_id}/revisions", scores.Revise)
		r.Get("/proposals/{id}/scores/{criterion_id}/revisions", scores.Revisions)

		r.Post("/comparisons", comparisons.Create)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Post("/templates", templates.Create)
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

// NewMetricsRouter serves liveness, readiness and Prometheus metrics.
func NewMetricsRouter(s store.Store) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
