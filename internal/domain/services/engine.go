package services

import (
	"time"

	"github.com/google/uuid"

	"scamtrap/internal/domain/models"
	"scamtrap/pkg/logger"
)

// Canned agent replies. The engagement script does not branch on
// category, only on the verdict.
const (
	scamReply  = "I can help. Please share your UPI ID, bank account, and IFSC for verification."
	cleanReply = "Thanks for the message. Can you clarify the issue?"
)

// RecordPublisher receives every classified record on a best-effort
// basis. Implementations must not block the caller.
type RecordPublisher interface {
	Publish(rec models.ConversationRecord)
}

// Engine orchestrates the classification pipeline for one inbound
// message: classify, categorize, extract, then apply the shared-state
// mutations and hand the record to any publisher. The engine itself
// holds no mutable state.
type Engine struct {
	classifier  *Classifier
	categorizer *Categorizer
	extractor   *Extractor
	analytics   *Aggregator
	publisher   RecordPublisher
	logger      *logger.Logger
}

// NewEngine creates a new engine. publisher may be nil.
func NewEngine(
	classifier *Classifier,
	categorizer *Categorizer,
	extractor *Extractor,
	analytics *Aggregator,
	publisher RecordPublisher,
	log *logger.Logger,
) *Engine {
	return &Engine{
		classifier:  classifier,
		categorizer: categorizer,
		extractor:   extractor,
		analytics:   analytics,
		publisher:   publisher,
		logger:      log.WithComponent("engine"),
	}
}

// Process runs the full pipeline for one message and returns the stored
// record plus the scripted agent reply. The three analysis steps are
// pure and order-independent; all shared mutations happen inside
// Aggregator.Record as one serialized unit.
func (e *Engine) Process(message string) (models.ConversationRecord, string) {
	classification := e.classifier.Classify(message)
	category := e.categorizer.Categorize(message)
	entities := e.extractor.Extract(message)

	reply := cleanReply
	if classification.ScamDetected {
		reply = scamReply
	}

	rec := models.ConversationRecord{
		ID:           uuid.New(),
		ScamDetected: classification.ScamDetected,
		Confidence:   classification.Confidence,
		Category:     category,
		Entities:     entities,
		Conversation: []models.ConversationTurn{
			{Role: models.RoleScammer, Text: message},
			{Role: models.RoleAgent, Text: reply},
		},
		Timestamp: time.Now().UTC(),
	}

	e.analytics.Record(rec)

	if e.publisher != nil {
		e.publisher.Publish(rec)
	}

	e.logger.Debug().
		Bool("scam_detected", rec.ScamDetected).
		Float64("confidence", rec.Confidence).
		Str("category", string(rec.Category)).
		Int("entities", rec.Entities.Total()).
		Msg("message processed")

	return rec, reply
}
