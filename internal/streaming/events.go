package streaming

import (
	"time"

	"scamtrap/internal/domain/models"
)

// Event types
const (
	EventDetectionClassified = "detection.classified"
)

// DetectionEvent is emitted for every classified message
type DetectionEvent struct {
	Type      string                    `json:"type"`
	Record    models.ConversationRecord `json:"record"`
	Timestamp time.Time                 `json:"timestamp"`
}

// NewDetectionEvent wraps a conversation record in an event envelope
func NewDetectionEvent(rec models.ConversationRecord) *DetectionEvent {
	return &DetectionEvent{
		Type:      EventDetectionClassified,
		Record:    rec,
		Timestamp: time.Now().UTC(),
	}
}
