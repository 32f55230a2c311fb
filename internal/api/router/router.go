// Package router assembles the HTTP API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/samedayramps/app-samedayramps/internal/api/handlers"
	"github.com/samedayramps/app-samedayramps/internal/metrics"
)

// Config wires the handlers and shared dependencies into the router.
type Config struct {
	DB       *gorm.DB
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Leads    *handlers.LeadsHandler
	Quotes   *handlers.QuotesHandler
	Settings *handlers.SettingsHandler
	Distance *handlers.DistanceHandler
}

// New builds the API router. /health, /metrics and the login endpoint are
// public; everything else requires a staff bearer token.
func New(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.PrometheusMiddleware)

	r.Get("/health", cfg.Health.Check)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(JWTAuth(cfg.DB))

			r.Get("/auth/me", cfg.Auth.Me)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Post("/auth/users", cfg.Auth.CreateUser)
			})

			r.Route("/leads", cfg.Leads.Routes)
			r.Route("/quotes", cfg.Quotes.Routes)
			r.Route("/settings", cfg.Settings.Routes)
			r.Get("/distance", cfg.Distance.Get)
		})
	})

	return r
}
