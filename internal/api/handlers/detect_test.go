package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scamtrap/internal/config"
	"scamtrap/internal/domain/services"
	"scamtrap/internal/infrastructure/persistence"
	"scamtrap/pkg/logger"
)

func testDeps() Dependencies {
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	classifier := services.NewClassifier(log)
	categorizer := services.NewCategorizer(log)
	extractor := services.NewExtractor(log)
	analytics := services.NewAggregator(0, log)
	engine := services.NewEngine(classifier, categorizer, extractor, analytics, nil, log)

	return Dependencies{
		Config: &config.Config{
			App:  config.AppConfig{Name: "scamtrap", Version: "test"},
			Auth: config.AuthConfig{APIKey: "test-key"},
		},
		Logger:     log,
		Engine:     engine,
		Classifier: classifier,
		Analytics:  analytics,
		Sink:       persistence.NewSink(nil, 0, log),
	}
}

func TestDetectScam(t *testing.T) {
	h := NewDetectHandler(testDeps())

	body := `{"message": "urgent: verify your otp and click this link", "language": "Hindi"}`
	req := httptest.NewRequest(http.MethodPost, "/detect-scam", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Detect(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		IsScam          bool    `json:"is_scam"`
		ConfidenceScore float64 `json:"confidence_score"`
		Explanation     string  `json:"explanation"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.IsScam {
		t.Error("expected is_scam true")
	}
	if resp.ConfidenceScore != 0.80 {
		t.Errorf("confidence_score = %v, want 0.80", resp.ConfidenceScore)
	}
	if resp.Explanation != "Message contains scam-related keywords" {
		t.Errorf("explanation = %q", resp.Explanation)
	}
}

func TestDetectClean(t *testing.T) {
	h := NewDetectHandler(testDeps())

	body := `{"message": "hello, how was your day"}`
	req := httptest.NewRequest(http.MethodPost, "/detect-scam", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Detect(rec, req)

	var resp struct {
		IsScam          bool    `json:"is_scam"`
		ConfidenceScore float64 `json:"confidence_score"`
		Explanation     string  `json:"explanation"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.IsScam {
		t.Error("expected is_scam false")
	}
	if resp.ConfidenceScore != 0.30 {
		t.Errorf("confidence_score = %v, want 0.30", resp.ConfidenceScore)
	}
	if resp.Explanation != "No scam patterns detected" {
		t.Errorf("explanation = %q", resp.Explanation)
	}
}

func TestDetectMissingMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"empty object", "{}"},
		{"empty message", `{"message": ""}`},
		{"malformed json", "{not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewDetectHandler(testDeps())

			req := httptest.NewRequest(http.MethodPost, "/detect-scam", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Detect(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}

			var resp map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["error"] != "Message is required" {
				t.Errorf("error = %q, want %q", resp["error"], "Message is required")
			}
		})
	}
}

func TestDetectDoesNotTouchAnalytics(t *testing.T) {
	deps := testDeps()
	h := NewDetectHandler(deps)

	body := `{"message": "urgent otp verify"}`
	req := httptest.NewRequest(http.MethodPost, "/detect-scam", strings.NewReader(body))
	h.Detect(httptest.NewRecorder(), req)

	if snap := deps.Analytics.Snapshot(); snap.TotalMessages != 0 {
		t.Errorf("detect endpoint leaked into analytics: %+v", snap)
	}
}
