package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"scamtrap/internal/config"
	"scamtrap/internal/domain/models"
	"scamtrap/internal/domain/services"
	"scamtrap/internal/infrastructure/cache"
	"scamtrap/pkg/logger"
)

// recentConversationLimit caps the conversation feed served to clients
const recentConversationLimit = 20

// snapshotTTL bounds how stale the cached analytics snapshot may get
const snapshotTTL = 5 * time.Minute

// ScanHandler serves the honeypot dashboard endpoints: latest scan,
// analytics, the conversation feed and the mock-scammer entry point.
type ScanHandler struct {
	config    *config.Config
	engine    *services.Engine
	analytics *services.Aggregator
	cache     *cache.RedisCache
	logger    *logger.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(deps Dependencies) *ScanHandler {
	return &ScanHandler{
		config:    deps.Config,
		engine:    deps.Engine,
		analytics: deps.Analytics,
		cache:     deps.Cache,
		logger:    deps.Logger.WithComponent("scan"),
	}
}

type mockScammerRequest struct {
	Message string `json:"message"`
}

type mockScammerResponse struct {
	Reply  string                    `json:"reply"`
	Output models.ConversationRecord `json:"output"`
}

// MockScammer handles POST /api/mock-scammer. The body is parsed
// tolerantly: a missing or malformed message field classifies the empty
// string rather than rejecting the request.
func (h *ScanHandler) MockScammer(w http.ResponseWriter, r *http.Request) {
	var req mockScammerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("unparseable mock-scammer body, treating as empty")
	}

	rec, reply := h.engine.Process(req.Message)

	writeJSON(w, http.StatusOK, mockScammerResponse{
		Reply:  reply,
		Output: rec,
	})
}

// Latest handles GET /api/scan, returning the most recent scan result
// or a placeholder when nothing has been processed yet
func (h *ScanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.analytics.Latest()
	if !ok {
		rec = models.PlaceholderRecord()
	}
	writeJSON(w, http.StatusOK, rec)
}

// Analytics handles GET /api/analytics. When Redis is available the
// snapshot is also cached for external dashboard consumers, best
// effort.
func (h *ScanHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	snap := h.analytics.Snapshot()

	if h.cache != nil {
		if err := h.cache.PublishSnapshot(r.Context(), snap, snapshotTTL); err != nil {
			h.logger.Debug().Err(err).Msg("failed to cache analytics snapshot")
		}
	}

	writeJSON(w, http.StatusOK, snap)
}

// Conversations handles GET /api/conversations, newest first
func (h *ScanHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.analytics.Recent(recentConversationLimit))
}

// ClientConfig handles GET /api/config, exposing the key the dashboard
// needs to call the protected endpoints
func (h *ScanHandler) ClientConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"apiKey": h.config.Auth.APIKey,
	})
}
