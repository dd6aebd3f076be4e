package services

import (
	"strings"

	"scamtrap/internal/domain/models"
	"scamtrap/pkg/logger"
)

// categoryRule maps trigger substrings to a category. Rules are applied
// in order, first match wins.
type categoryRule struct {
	triggers []string
	category models.Category
}

// categoryRules is ordered: "loan" outranks "upi", so a message carrying
// both lands in the loan bucket.
var categoryRules = []categoryRule{
	{triggers: []string{"loan"}, category: models.CategoryLoan},
	{triggers: []string{"kyc"}, category: models.CategoryKYC},
	{triggers: []string{"upi"}, category: models.CategoryUPI},
	{triggers: []string{"bank", "ifsc"}, category: models.CategoryBank},
}

// Categorizer assigns a fraud-type label to every message, whether or
// not it was flagged as a scam
type Categorizer struct {
	logger *logger.Logger
	rules  []categoryRule
}

// NewCategorizer creates a new categorizer
func NewCategorizer(log *logger.Logger) *Categorizer {
	return &Categorizer{
		logger: log.WithComponent("categorizer"),
		rules:  categoryRules,
	}
}

// Categorize returns the first matching category for the lower-cased
// text, falling back to phishing when no rule triggers
func (c *Categorizer) Categorize(text string) models.Category {
	lower := strings.ToLower(text)
	for _, rule := range c.rules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				return rule.category
			}
		}
	}
	return models.CategoryPhishing
}
