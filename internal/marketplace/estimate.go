package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/pkg/config"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// Estimate is a third-party price indication for one part. It is explicitly
// labeled as an estimate in every response that carries it.
type Estimate struct {
	PartName  string          `json:"part_name"`
	PriceLow  decimal.Decimal `json:"price_low"`
	PriceMid  decimal.Decimal `json:"price_mid"`
	PriceHigh decimal.Decimal `json:"price_high"`
	Rationale string          `json:"rationale,omitempty"`
	Estimate  bool            `json:"is_estimate"`
}

// EstimateClient fetches price estimates from the configured provider.
type EstimateClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewEstimateClient builds the client. An empty base URL disables it.
func NewEstimateClient(cfg config.MarketplaceConfig) *EstimateClient {
	timeout := cfg.EstimateTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &EstimateClient{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.EstimateBaseURL), "/"),
		apiKey:  cfg.EstimateAPIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an estimate provider is configured.
func (c *EstimateClient) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Fetch returns the estimate for one part and vehicle.
func (c *EstimateClient) Fetch(ctx context.Context, partName string, vehicle types.Vehicle) (*Estimate, error) {
	if !c.Enabled() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "price estimate provider not configured")
	}
	if strings.TrimSpace(partName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "part name required")
	}

	query := url.Values{}
	query.Set("part", partName)
	if vehicle.Make != "" {
		query.Set("make", vehicle.Make)
	}
	if vehicle.Model != "" {
		query.Set("model", vehicle.Model)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/estimate?"+query.Encode(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build estimate request")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "price estimate request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("price estimate provider returned %d", resp.StatusCode))
	}

	var estimate Estimate
	if err := json.NewDecoder(resp.Body).Decode(&estimate); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode price estimate")
	}
	estimate.PartName = partName
	estimate.Estimate = true
	return &estimate, nil
}
