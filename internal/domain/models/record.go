package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a coarse fraud-type label assigned to every message,
// independent of the scam verdict.
type Category string

const (
	CategoryPhishing Category = "phishing"
	CategoryLoan     Category = "loan"
	CategoryKYC      Category = "kyc"
	CategoryUPI      Category = "upi"
	CategoryBank     Category = "bank"

	// CategoryUnknown only ever appears on the placeholder record served
	// before any message has been processed.
	CategoryUnknown Category = "unknown"
)

// AllCategories returns the closed set of assignable categories
func AllCategories() []Category {
	return []Category{
		CategoryPhishing,
		CategoryLoan,
		CategoryKYC,
		CategoryUPI,
		CategoryBank,
	}
}

// Classification is the scam verdict for a single message.
// Confidence is a keyword-hit heuristic in [0.30, 0.95], not a
// calibrated probability.
type Classification struct {
	ScamDetected bool    `json:"scamDetected"`
	Confidence   float64 `json:"confidence"`
}

// EntitySet holds the financial and contact identifiers extracted from a
// message, in first-match order with duplicates preserved. The lists are
// independent: a 10-digit run can appear under both PhoneNumbers and
// BankAccounts.
type EntitySet struct {
	UPIIDs        []string `json:"upiIds"`
	BankAccounts  []string `json:"bankAccounts"`
	IFSCCodes     []string `json:"ifscCodes"`
	PhoneNumbers  []string `json:"phoneNumbers"`
	PhishingLinks []string `json:"phishingLinks"`
}

// EmptyEntitySet returns an EntitySet whose lists serialize as empty
// arrays rather than null
func EmptyEntitySet() EntitySet {
	return EntitySet{
		UPIIDs:        []string{},
		BankAccounts:  []string{},
		IFSCCodes:     []string{},
		PhoneNumbers:  []string{},
		PhishingLinks: []string{},
	}
}

// Total returns the number of extracted entities across all lists
func (e EntitySet) Total() int {
	return len(e.UPIIDs) + len(e.BankAccounts) + len(e.IFSCCodes) +
		len(e.PhoneNumbers) + len(e.PhishingLinks)
}

// Conversation turn roles
const (
	RoleScammer = "scammer"
	RoleAgent   = "agent"
)

// ConversationTurn is one message in the scammer/agent exchange
type ConversationTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ConversationRecord is the immutable result of processing one inbound
// message: verdict, category, extracted entities and the two-turn
// exchange that produced them.
type ConversationRecord struct {
	ID           uuid.UUID          `json:"id"`
	ScamDetected bool               `json:"scamDetected"`
	Confidence   float64            `json:"confidence"`
	Category     Category           `json:"category"`
	Entities     EntitySet          `json:"entities"`
	Conversation []ConversationTurn `json:"conversation"`
	Timestamp    time.Time          `json:"timestamp"`
}

// PlaceholderRecord is served when no message has been processed yet
func PlaceholderRecord() ConversationRecord {
	return ConversationRecord{
		ScamDetected: false,
		Confidence:   0,
		Category:     CategoryUnknown,
		Entities:     EmptyEntitySet(),
		Conversation: []ConversationTurn{},
		Timestamp:    time.Now().UTC(),
	}
}

// AnalyticsSnapshot is a consistent view of the running aggregate
// counters. DetectionRate is scamsDetected/totalMessages rounded to two
// decimals, or zero before any message has been seen.
type AnalyticsSnapshot struct {
	TotalMessages int64              `json:"totalMessages"`
	ScamsDetected int64              `json:"scamsDetected"`
	Categories    map[Category]int64 `json:"categories"`
	DetectionRate float64            `json:"detectionRate"`
}
