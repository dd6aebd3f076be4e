package services

import (
	"sync"

	"scamtrap/internal/domain/models"
	"scamtrap/pkg/logger"
)

// DefaultHistoryCapacity bounds the retained conversation log when no
// capacity is configured. Consumers only ever read the most recent 20
// records; the cap exists to keep memory flat under sustained traffic.
const DefaultHistoryCapacity = 1000

// Aggregator owns all mutable state shared across requests: the running
// counters and the bounded, newest-first conversation log. Every
// mutation for one message happens under a single lock so concurrent
// requests never interleave their counter increments or log insertions.
type Aggregator struct {
	logger   *logger.Logger
	capacity int

	mu            sync.RWMutex
	totalMessages int64
	scamsDetected int64
	categories    map[models.Category]int64
	latest        *models.ConversationRecord
	history       []models.ConversationRecord
}

// NewAggregator creates an aggregator with zeroed counters. A
// non-positive capacity falls back to DefaultHistoryCapacity.
func NewAggregator(capacity int, log *logger.Logger) *Aggregator {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}

	categories := make(map[models.Category]int64, 5)
	for _, c := range models.AllCategories() {
		categories[c] = 0
	}

	return &Aggregator{
		logger:     log.WithComponent("analytics"),
		capacity:   capacity,
		categories: categories,
	}
}

// Record applies one classified message to the shared state as a single
// atomic unit: the total counter always moves, the scam counter and the
// category bucket only move for scam verdicts, and the record is
// prepended to the history.
func (a *Aggregator) Record(rec models.ConversationRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalMessages++
	if rec.ScamDetected {
		a.scamsDetected++
		a.categories[rec.Category]++
	}
	a.latest = &rec

	// Prepend, then trim to capacity
	a.history = append(a.history, models.ConversationRecord{})
	copy(a.history[1:], a.history)
	a.history[0] = rec
	if len(a.history) > a.capacity {
		a.history = a.history[:a.capacity]
	}
}

// Snapshot returns a consistent copy of the counters. The detection rate
// is zero on a fresh aggregator rather than a division error.
func (a *Aggregator) Snapshot() models.AnalyticsSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	categories := make(map[models.Category]int64, len(a.categories))
	for k, v := range a.categories {
		categories[k] = v
	}

	var rate float64
	if a.totalMessages > 0 {
		rate = round2(float64(a.scamsDetected) / float64(a.totalMessages))
	}

	return models.AnalyticsSnapshot{
		TotalMessages: a.totalMessages,
		ScamsDetected: a.scamsDetected,
		Categories:    categories,
		DetectionRate: rate,
	}
}

// Latest returns the most recently recorded conversation, if any
func (a *Aggregator) Latest() (models.ConversationRecord, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.latest == nil {
		return models.ConversationRecord{}, false
	}
	return *a.latest, true
}

// Recent returns a copy of the newest n records, most recent first
func (a *Aggregator) Recent(n int) []models.ConversationRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if n > len(a.history) {
		n = len(a.history)
	}
	out := make([]models.ConversationRecord, n)
	copy(out, a.history[:n])
	return out
}

// Size returns the number of retained history records
func (a *Aggregator) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.history)
}
