package marketplace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quotewerk/quotewerk-backend/pkg/config"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

func TestLinksCombinePartAndVehicle(t *testing.T) {
	t.Parallel()

	gen, err := NewLinkGenerator("eBay|https://www.ebay.de/sch/i.html?_nkw=%s,Teile24|https://teile24.example/search?q=%s")
	if err != nil {
		t.Fatalf("NewLinkGenerator: %v", err)
	}

	links := gen.Links("Stoßstange vorne", types.Vehicle{Make: "VW", Model: "Golf"})

	if len(links) != 2 {
		t.Fatalf("expected one link per shop, got %v", links)
	}
	if links[0].Shop != "eBay" {
		t.Fatalf("shop order must follow config, got %q", links[0].Shop)
	}
	if !strings.Contains(links[0].URL, "VW") || !strings.Contains(links[0].URL, "Golf") {
		t.Fatalf("query must include the vehicle identity: %s", links[0].URL)
	}
	if strings.Contains(links[0].URL, " ") {
		t.Fatalf("query must be url-encoded: %s", links[0].URL)
	}
}

func TestLinksEmptyPartProducesNothing(t *testing.T) {
	t.Parallel()

	gen, err := NewLinkGenerator("eBay|https://www.ebay.de/sch/i.html?_nkw=%s")
	if err != nil {
		t.Fatalf("NewLinkGenerator: %v", err)
	}
	if links := gen.Links("  ", types.Vehicle{}); links != nil {
		t.Fatalf("expected no links, got %v", links)
	}
}

func TestNewLinkGeneratorRejectsMalformedTemplates(t *testing.T) {
	t.Parallel()

	cases := []string{
		"no-separator-here",
		"eBay|https://example.com/no-placeholder",
		"|https://example.com/?q=%s",
	}
	for _, templates := range cases {
		if _, err := NewLinkGenerator(templates); err == nil {
			t.Fatalf("expected error for %q", templates)
		}
	}
}

func TestFetchEstimateLabelsResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("part"); got != "Scheinwerfer links" {
			t.Errorf("unexpected part query %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"price_low":  "80.00",
			"price_mid":  "120.00",
			"price_high": "180.00",
			"rationale":  "based on 14 recent listings",
		})
	}))
	defer server.Close()

	client := NewEstimateClient(config.MarketplaceConfig{EstimateBaseURL: server.URL})

	estimate, err := client.Fetch(context.Background(), "Scheinwerfer links", types.Vehicle{Make: "BMW"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !estimate.Estimate {
		t.Fatalf("result must always be labeled an estimate")
	}
	if estimate.PriceMid.String() != "120" {
		t.Fatalf("expected mid 120, got %s", estimate.PriceMid)
	}
}

func TestFetchEstimateDisabledClient(t *testing.T) {
	t.Parallel()

	client := NewEstimateClient(config.MarketplaceConfig{})
	if _, err := client.Fetch(context.Background(), "Spiegel", types.Vehicle{}); err == nil {
		t.Fatalf("disabled client must error")
	}
}
