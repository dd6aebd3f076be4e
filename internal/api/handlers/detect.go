package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"scamtrap/internal/domain/services"
	"scamtrap/internal/infrastructure/persistence"
	"scamtrap/pkg/logger"
)

const defaultLanguage = "English"

// DetectHandler serves the standalone verdict endpoint used by
// external integrations. Unlike the honeypot flow it only classifies;
// nothing is added to analytics or the conversation log.
type DetectHandler struct {
	classifier *services.Classifier
	sink       *persistence.Sink
	logger     *logger.Logger
}

// NewDetectHandler creates a new detect handler
func NewDetectHandler(deps Dependencies) *DetectHandler {
	return &DetectHandler{
		classifier: deps.Classifier,
		sink:       deps.Sink,
		logger:     deps.Logger.WithComponent("detect"),
	}
}

type detectRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type detectResponse struct {
	IsScam          bool    `json:"is_scam"`
	ConfidenceScore float64 `json:"confidence_score"`
	Explanation     string  `json:"explanation"`
}

// Detect handles POST /detect-scam
func (h *DetectHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if req.Language == "" {
		req.Language = defaultLanguage
	}

	classification := h.classifier.Classify(req.Message)

	h.sink.Enqueue(persistence.Entry{
		ID:         uuid.New(),
		Message:    req.Message,
		IsScam:     classification.ScamDetected,
		Confidence: classification.Confidence,
		Language:   req.Language,
		CreatedAt:  time.Now().UTC(),
	})

	h.logger.Info().
		Bool("is_scam", classification.ScamDetected).
		Float64("confidence", classification.Confidence).
		Str("language", req.Language).
		Msg("detection request processed")

	writeJSON(w, http.StatusOK, detectResponse{
		IsScam:          classification.ScamDetected,
		ConfidenceScore: classification.Confidence,
		Explanation:     h.classifier.Explain(classification),
	})
}
