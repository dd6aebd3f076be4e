package handlers

import (
	"encoding/json"
	"net/http"

	"scamtrap/internal/config"
	"scamtrap/internal/domain/services"
	"scamtrap/internal/infrastructure/cache"
	"scamtrap/internal/infrastructure/database"
	"scamtrap/internal/infrastructure/persistence"
	"scamtrap/pkg/logger"
)

// Dependencies holds everything the handlers need
type Dependencies struct {
	Config     *config.Config
	Logger     *logger.Logger
	Engine     *services.Engine
	Classifier *services.Classifier
	Analytics  *services.Aggregator
	Sink       *persistence.Sink
	Cache      *cache.RedisCache
	DB         *database.PostgresDB
}

// Handlers aggregates all HTTP handlers
type Handlers struct {
	Health *HealthHandler
	Scan   *ScanHandler
	Detect *DetectHandler
}

// New creates all handlers with their dependencies
func New(deps Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps),
		Scan:   NewScanHandler(deps),
		Detect: NewDetectHandler(deps),
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body with the given status code
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
