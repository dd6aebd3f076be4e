package services

import (
	"regexp"

	"scamtrap/internal/domain/models"
	"scamtrap/pkg/logger"
)

// Entity patterns, compiled once and reused. The scans are independent
// and no cross-pattern deduplication is applied: a 10-digit run that
// matches the phone pattern also satisfies the 9-18 digit account
// pattern, and both lists will carry it.
var (
	upiPattern     = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	ifscPattern    = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)
	accountPattern = regexp.MustCompile(`\b\d{9,18}\b`)
	phonePattern   = regexp.MustCompile(`\b\d{10}\b`)
	linkPattern    = regexp.MustCompile(`https?://[^\s]+`)
)

// Extractor pulls financial and contact identifiers out of message text
type Extractor struct {
	logger *logger.Logger
}

// NewExtractor creates a new entity extractor
func NewExtractor(log *logger.Logger) *Extractor {
	return &Extractor{
		logger: log.WithComponent("extractor"),
	}
}

// Extract runs all pattern scans against the text and returns every
// non-overlapping match per pattern in left-to-right order, duplicates
// preserved
func (e *Extractor) Extract(text string) models.EntitySet {
	return models.EntitySet{
		UPIIDs:        matchAll(upiPattern, text),
		BankAccounts:  matchAll(accountPattern, text),
		IFSCCodes:     matchAll(ifscPattern, text),
		PhoneNumbers:  matchAll(phonePattern, text),
		PhishingLinks: matchAll(linkPattern, text),
	}
}

// matchAll returns all matches, or an empty slice so consumers and the
// JSON layer never see nil
func matchAll(re *regexp.Regexp, text string) []string {
	matches := re.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
