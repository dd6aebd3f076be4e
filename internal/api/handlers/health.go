package handlers

import (
	"net/http"
	"time"

	"scamtrap/internal/config"
	"scamtrap/internal/infrastructure/cache"
	"scamtrap/internal/infrastructure/database"
	"scamtrap/pkg/logger"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	config *config.Config
	cache  *cache.RedisCache
	db     *database.PostgresDB
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{
		config: deps.Config,
		cache:  deps.Cache,
		db:     deps.DB,
		logger: deps.Logger.WithComponent("health"),
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   h.config.App.Name,
		"version":   h.config.App.Version,
		"timestamp": time.Now().UTC(),
	})
}

// Ready handles GET /ready. The core pipeline has no hard dependencies,
// so optional backends only degrade the report, never fail it.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			checks["postgres"] = "unhealthy: " + err.Error()
		} else {
			checks["postgres"] = "healthy"
		}
	} else {
		checks["postgres"] = "disabled"
	}

	if h.cache != nil {
		if err := h.cache.Client().Ping(r.Context()).Err(); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
		} else {
			checks["redis"] = "healthy"
		}
	} else {
		checks["redis"] = "disabled"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"checks": checks,
	})
}
