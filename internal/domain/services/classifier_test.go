package services

import (
	"strings"
	"testing"

	"scamtrap/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestClassifierClassify(t *testing.T) {
	c := NewClassifier(testLogger())

	tests := []struct {
		name           string
		message        string
		wantScam       bool
		wantConfidence float64
	}{
		{
			name:           "multiple keywords",
			message:        "Your account is urgent, click link to verify",
			wantScam:       true,
			wantConfidence: 0.80,
		},
		{
			name:           "empty message",
			message:        "",
			wantScam:       false,
			wantConfidence: 0.30,
		},
		{
			name:           "no keywords",
			message:        "hello there, how are you today",
			wantScam:       false,
			wantConfidence: 0.30,
		},
		{
			name:           "single keyword below threshold",
			message:        "please share your otp",
			wantScam:       false,
			wantConfidence: 0.40,
		},
		{
			name:           "exactly two keywords",
			message:        "urgent otp needed",
			wantScam:       true,
			wantConfidence: 0.50,
		},
		{
			name:           "case insensitive",
			message:        "URGENT: VERIFY your OTP now",
			wantScam:       true,
			wantConfidence: 0.60,
		},
		{
			name:           "confidence clamped at ceiling",
			message:        "verify kyc account urgent otp click link bank upi loan refund blocked suspended payment",
			wantScam:       true,
			wantConfidence: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.message)
			if got.ScamDetected != tt.wantScam {
				t.Errorf("ScamDetected = %v, want %v", got.ScamDetected, tt.wantScam)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifierRepeatedKeywordCountsOnce(t *testing.T) {
	c := NewClassifier(testLogger())

	single := c.Classify("otp")
	repeated := c.Classify("otp otp otp otp")

	if single != repeated {
		t.Errorf("repeated keyword changed result: single=%+v repeated=%+v", single, repeated)
	}
}

func TestClassifierDeterministic(t *testing.T) {
	c := NewClassifier(testLogger())
	msg := "urgent: verify your bank account now"

	first := c.Classify(msg)
	for i := 0; i < 10; i++ {
		if got := c.Classify(msg); got != first {
			t.Fatalf("classification not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestClassifierConfidenceMonotonic(t *testing.T) {
	c := NewClassifier(testLogger())

	// Each message adds one more distinct keyword than the last
	prev := -1.0
	msg := ""
	for _, kw := range []string{"verify", "kyc", "urgent", "otp", "loan"} {
		msg = strings.TrimSpace(msg + " " + kw)
		got := c.Classify(msg)
		if got.Confidence < prev {
			t.Fatalf("confidence decreased with more keywords: %v after %v (%q)", got.Confidence, prev, msg)
		}
		prev = got.Confidence
	}
}

func TestClassifierExplain(t *testing.T) {
	c := NewClassifier(testLogger())

	scam := c.Classify("urgent otp verify")
	if got := c.Explain(scam); got != "Message contains scam-related keywords" {
		t.Errorf("Explain(scam) = %q", got)
	}

	clean := c.Classify("hello")
	if got := c.Explain(clean); got != "No scam patterns detected" {
		t.Errorf("Explain(clean) = %q", got)
	}
}
