// Package recognition talks to the optional photo damage-recognition
// service. Its output is only ever a set of work-item candidates the user
// still has to confirm; when the service is unreachable or unconfigured the
// wizard falls back to manual part selection.
package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/quotewerk/quotewerk-backend/internal/catalog"
	"github.com/quotewerk/quotewerk-backend/pkg/config"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
)

// Candidate is one damage finding proposed by the service.
type Candidate struct {
	Part                  string                  `json:"part"`
	DamageDescription     string                  `json:"damage_description"`
	Severity              string                  `json:"severity"`
	RecommendedOperations []enums.RepairOperation `json:"recommended_operations"`
	Confidence            float64                 `json:"confidence"`
}

// Request carries the image references plus the active service context the
// model grounds its answer in.
type Request struct {
	ImageRefs         []string                `json:"image_refs"`
	ServiceLabel      string                  `json:"service_label"`
	AllowedParts      []string                `json:"allowed_parts"`
	AllowedOperations []enums.RepairOperation `json:"allowed_operations"`
}

// Client calls the recognition endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logg    *logger.Logger
}

// NewClient builds the client. A client with an empty base URL is valid and
// permanently disabled.
func NewClient(cfg config.RecognitionConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logg:    logg,
	}, nil
}

// Enabled reports whether a recognition endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Analyze submits the images and returns candidates filtered down to the
// parts and operations the active catalog entry actually allows. Every
// failure path returns an empty candidate list with a nil error; the wizard
// treats recognition as best-effort.
func (c *Client) Analyze(ctx context.Context, req Request, entry catalog.Entry) []Candidate {
	if !c.Enabled() || len(req.ImageRefs) == 0 {
		return nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		c.logg.Error(ctx, "recognition: marshal request", err)
		return nil
	}

	var raw []Candidate
	backoff := retry.WithMaxRetries(2, retry.NewExponential(300*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidates, err := c.post(ctx, body)
		if err != nil {
			return err
		}
		raw = candidates
		return nil
	})
	if err != nil {
		c.logg.Error(ctx, "recognition: analyze failed, degrading to manual selection", err)
		return nil
	}

	return filter(raw, entry)
}

func (c *Client) post(ctx context.Context, body []byte) ([]Candidate, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, retry.RetryableError(fmt.Errorf("recognition service returned %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition service returned %d", resp.StatusCode)
	}

	var payload struct {
		Candidates []Candidate `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode recognition response: %w", err)
	}
	return payload.Candidates, nil
}

// filter drops candidates for parts the catalog does not offer and strips
// recommended operations the service type does not allow.
func filter(raw []Candidate, entry catalog.Entry) []Candidate {
	var out []Candidate
	for _, candidate := range raw {
		if candidate.Part == "" || !entry.HasPart(candidate.Part) {
			continue
		}
		var ops []enums.RepairOperation
		for _, op := range candidate.RecommendedOperations {
			if entry.HasOperation(op) {
				ops = append(ops, op)
			}
		}
		candidate.RecommendedOperations = ops
		out = append(out, candidate)
	}
	return out
}
