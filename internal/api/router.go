package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"scamtrap/internal/api/handlers"
	"scamtrap/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes and middleware
func NewRouter(deps handlers.Dependencies) http.Handler {
	h := handlers.New(deps)
	cfg := deps.Config

	r := chi.NewRouter()

	// Base middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	if cfg.RateLimit.Enabled && deps.Cache != nil {
		r.Use(middleware.RateLimiter(deps.Cache, cfg.RateLimit.RequestsPerMinute, deps.Logger))
	}

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/health", h.Health.Check)
		r.Get("/ready", h.Health.Ready)
		r.Get("/api/config", h.Scan.ClientConfig)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.Auth.APIKey))

		r.Get("/api/scan", h.Scan.Latest)
		r.Get("/api/analytics", h.Scan.Analytics)
		r.Get("/api/conversations", h.Scan.Conversations)
		r.Post("/api/mock-scammer", h.Scan.MockScammer)
		r.Post("/detect-scam", h.Detect.Detect)
	})

	return r
}
