package recognition

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quotewerk/quotewerk-backend/internal/catalog"
	"github.com/quotewerk/quotewerk-backend/pkg/config"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "recognition-test", Level: zerolog.Disabled, Output: io.Discard})
}

func paintEntry() catalog.Entry {
	return catalog.Entry{
		Type:       enums.ServicePaint,
		Label:      "Lackierung",
		Parts:      []string{"Stoßstange vorne", "Motorhaube"},
		Operations: []enums.RepairOperation{enums.OpPaint, enums.OpSmartRepair},
	}
}

func TestAnalyzeFiltersToCatalog(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/analyze" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing api key header")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"part":                   "Stoßstange vorne",
					"damage_description":     "Kratzer und Lackabplatzer",
					"severity":               "medium",
					"recommended_operations": []string{"lackieren", "schweissen"},
					"confidence":             0.91,
				},
				{
					"part":       "Auspuff",
					"severity":   "low",
					"confidence": 0.4,
				},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(config.RecognitionConfig{BaseURL: server.URL, APIKey: "secret"}, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	candidates := client.Analyze(context.Background(), Request{
		ImageRefs:    []string{"img-1"},
		ServiceLabel: "Lackierung",
	}, paintEntry())

	if len(candidates) != 1 {
		t.Fatalf("parts outside the catalog must be dropped, got %v", candidates)
	}
	got := candidates[0]
	if got.Part != "Stoßstange vorne" {
		t.Fatalf("unexpected candidate %+v", got)
	}
	if len(got.RecommendedOperations) != 1 || got.RecommendedOperations[0] != enums.OpPaint {
		t.Fatalf("disallowed operations must be stripped, got %v", got.RecommendedOperations)
	}
}

func TestAnalyzeDegradesOnServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(config.RecognitionConfig{BaseURL: server.URL}, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	candidates := client.Analyze(context.Background(), Request{ImageRefs: []string{"img-1"}}, paintEntry())
	if candidates != nil {
		t.Fatalf("a failing service must degrade to no candidates, got %v", candidates)
	}
}

func TestAnalyzeDisabledWithoutBaseURL(t *testing.T) {
	t.Parallel()

	client, err := NewClient(config.RecognitionConfig{}, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client without a base URL must be disabled")
	}
	if got := client.Analyze(context.Background(), Request{ImageRefs: []string{"img-1"}}, paintEntry()); got != nil {
		t.Fatalf("disabled client must return nil, got %v", got)
	}
}
