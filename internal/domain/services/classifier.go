package services

import (
	"math"
	"strings"

	"scamtrap/internal/domain/models"
	"scamtrap/pkg/logger"
)

// Keyword scoring constants. Confidence starts at the base, gains a step
// per distinct keyword hit and is clamped at the ceiling; two or more
// hits flip the scam verdict.
const (
	confidenceBase    = 0.30
	confidenceStep    = 0.10
	confidenceCeiling = 0.95
	scamHitThreshold  = 2
)

// scamKeywords is the fixed term list counted against lower-cased
// message text. Each keyword contributes at most one hit no matter how
// often it repeats.
var scamKeywords = []string{
	"verify", "kyc", "account", "urgent", "otp", "click", "link", "bank",
	"upi", "loan", "refund", "blocked", "suspended", "payment",
}

// Classifier scores free-text messages against the keyword list
type Classifier struct {
	logger   *logger.Logger
	keywords []string
}

// NewClassifier creates a new keyword classifier
func NewClassifier(log *logger.Logger) *Classifier {
	return &Classifier{
		logger:   log.WithComponent("classifier"),
		keywords: scamKeywords,
	}
}

// Classify scores the text and returns the scam verdict with a
// confidence in [0.30, 0.95]. It is deterministic and total: any input,
// including the empty string, yields a defined result.
func (c *Classifier) Classify(text string) models.Classification {
	hits := c.HitCount(text)

	confidence := confidenceBase + float64(hits)*confidenceStep
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}

	return models.Classification{
		ScamDetected: hits >= scamHitThreshold,
		Confidence:   round2(confidence),
	}
}

// HitCount returns the number of distinct keywords found as substrings
// in the lower-cased text
func (c *Classifier) HitCount(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}

// Explain returns the canned explanation for a verdict
func (c *Classifier) Explain(classification models.Classification) string {
	if classification.ScamDetected {
		return "Message contains scam-related keywords"
	}
	return "No scam patterns detected"
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
