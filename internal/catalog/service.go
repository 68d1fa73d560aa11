// Package catalog serves the reference data the wizard renders: the service
// type list, the selectable parts and operations per service and the extra
// field schemas. Entries come from the database with a hardcoded fallback, so
// a fresh install quotes correctly before anyone has seeded the tables.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/internal/pricing"
	"github.com/quotewerk/quotewerk-backend/pkg/config"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// Entry is the resolved catalog data for one service type.
type Entry struct {
	Type       enums.ServiceType       `json:"type"`
	Label      string                  `json:"label"`
	Parts      []string                `json:"parts"`
	Operations []enums.RepairOperation `json:"operations"`
	Fields     []types.FieldSpec       `json:"fields,omitempty"`
}

// HasPart reports whether the part is selectable for this service.
func (e Entry) HasPart(part string) bool {
	for _, candidate := range e.Parts {
		if candidate == part {
			return true
		}
	}
	return false
}

// HasOperation reports whether the operation is allowed for this service.
func (e Entry) HasOperation(op enums.RepairOperation) bool {
	for _, candidate := range e.Operations {
		if candidate == op {
			return true
		}
	}
	return false
}

// Service exposes catalog reads to the wizard and the API layer.
type Service interface {
	Entries(ctx context.Context) []Entry
	Entry(ctx context.Context, serviceType enums.ServiceType) (Entry, bool)
	Rates(ctx context.Context) pricing.Rates
}

type service struct {
	repo          *Repository
	logg          *logger.Logger
	fallbackRates pricing.Rates
	cacheTTL      time.Duration

	mu       sync.RWMutex
	entries  []Entry
	rates    pricing.Rates
	ratesOK  bool
	loadedAt time.Time
	ratesAt  time.Time
}

// NewService builds the catalog service. Rate strings from config are parsed
// eagerly so a malformed override fails at startup, not mid-quote.
func NewService(repo *Repository, logg *logger.Logger, cfg config.PricingConfig) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	fallback, err := ratesFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse pricing config: %w", err)
	}
	return &service{
		repo:          repo,
		logg:          logg,
		fallbackRates: fallback,
		cacheTTL:      5 * time.Minute,
	}, nil
}

func ratesFromConfig(cfg config.PricingConfig) (pricing.Rates, error) {
	var rates pricing.Rates
	var err error
	if rates.VATPercent, err = decimal.NewFromString(cfg.VATPercent); err != nil {
		return rates, err
	}
	if rates.Paint, err = decimal.NewFromString(cfg.PaintHourlyRate); err != nil {
		return rates, err
	}
	if rates.Bodywork, err = decimal.NewFromString(cfg.BodyworkHourlyRate); err != nil {
		return rates, err
	}
	if rates.Mechanical, err = decimal.NewFromString(cfg.MechanicalHourlyRate); err != nil {
		return rates, err
	}
	rates.Misc, err = decimal.NewFromString(cfg.MiscHourlyRate)
	return rates, err
}

// Entries returns all catalog entries, refreshing the cache when stale.
// Database failures degrade to the hardcoded defaults.
func (s *service) Entries(ctx context.Context) []Entry {
	s.mu.RLock()
	if s.entries != nil && time.Since(s.loadedAt) < s.cacheTTL {
		entries := s.entries
		s.mu.RUnlock()
		return entries
	}
	s.mu.RUnlock()

	entries := s.load(ctx)

	s.mu.Lock()
	s.entries = entries
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return entries
}

func (s *service) load(ctx context.Context) []Entry {
	if s.repo == nil {
		return defaultEntries()
	}
	records, err := s.repo.ListEntries(ctx)
	if err != nil || len(records) == 0 {
		if err != nil {
			s.logg.Error(ctx, "catalog load failed, serving defaults", err)
		}
		return defaultEntries()
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entry := Entry{
			Type:   record.ServiceType,
			Label:  record.Label,
			Parts:  record.Parts,
			Fields: record.FieldSchema,
		}
		for _, raw := range record.Operations {
			op, err := enums.ParseRepairOperation(raw)
			if err != nil {
				s.logg.Warn(ctx, fmt.Sprintf("skipping unknown catalog operation %q", raw))
				continue
			}
			entry.Operations = append(entry.Operations, op)
		}
		entries = append(entries, entry)
	}
	return entries
}

// Entry resolves one service type.
func (s *service) Entry(ctx context.Context, serviceType enums.ServiceType) (Entry, bool) {
	for _, entry := range s.Entries(ctx) {
		if entry.Type == serviceType {
			return entry, true
		}
	}
	return Entry{}, false
}

// Rates returns the active hourly rates, preferring the database row and
// falling back to the configured defaults.
func (s *service) Rates(ctx context.Context) pricing.Rates {
	s.mu.RLock()
	if s.ratesOK && time.Since(s.ratesAt) < s.cacheTTL {
		rates := s.rates
		s.mu.RUnlock()
		return rates
	}
	s.mu.RUnlock()

	rates := s.fallbackRates
	if s.repo != nil {
		settings, err := s.repo.LatestRates(ctx)
		switch {
		case err != nil:
			s.logg.Error(ctx, "rate settings load failed, serving config defaults", err)
		case settings != nil:
			rates = pricing.Rates{
				Paint:      settings.PaintRate,
				Bodywork:   settings.BodyworkRate,
				Mechanical: settings.MechanicalRate,
				Misc:       settings.MiscRate,
				VATPercent: settings.VATPercent,
			}
		}
	}

	s.mu.Lock()
	s.rates = rates
	s.ratesOK = true
	s.ratesAt = time.Now()
	s.mu.Unlock()
	return rates
}
