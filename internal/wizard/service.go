// Package wizard implements the step-based quotation flow: one draft per
// session, advanced through validated transitions, with totals recomputed
// after every mutation. All state lives on the explicit Draft value in the
// session store; the service itself is stateless.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/internal/catalog"
	"github.com/quotewerk/quotewerk-backend/internal/normalize"
	"github.com/quotewerk/quotewerk-backend/internal/pricing"
	"github.com/quotewerk/quotewerk-backend/internal/quote"
	"github.com/quotewerk/quotewerk-backend/internal/recognition"
	"github.com/quotewerk/quotewerk-backend/internal/sources"
	"github.com/quotewerk/quotewerk-backend/internal/workitems"
	"github.com/quotewerk/quotewerk-backend/pkg/db/models"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
	"github.com/quotewerk/quotewerk-backend/pkg/metrics"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// Service drives the quotation wizard.
type Service interface {
	Start(ctx context.Context, input StartInput) (*quote.Draft, error)
	Get(ctx context.Context, sessionID string) (*quote.Draft, error)
	Advance(ctx context.Context, sessionID string) (*StepResult, error)
	Retreat(ctx context.Context, sessionID string) (*StepResult, error)
	SetVehicle(ctx context.Context, sessionID string, vehicle types.Vehicle) (*quote.Draft, error)
	SelectServices(ctx context.Context, sessionID string, services []enums.ServiceType) (*quote.Draft, error)
	SetDetailField(ctx context.Context, sessionID string, service enums.ServiceType, fieldID, value string) (*quote.Draft, error)
	SelectParts(ctx context.Context, sessionID string, service enums.ServiceType, parts []string) (*quote.Draft, error)
	SetOperations(ctx context.Context, sessionID, part string, service enums.ServiceType, ops []enums.RepairOperation) (*quote.Draft, error)
	UpsertReplacementPart(ctx context.Context, sessionID string, part types.ReplacementPart) (*quote.Draft, error)
	RemoveReplacementPart(ctx context.Context, sessionID string, partID uuid.UUID) (*quote.Draft, error)
	SetReplacementVehicleCost(ctx context.Context, sessionID string, cost decimal.Decimal) (*quote.Draft, error)
	ToggleChecklist(ctx context.Context, sessionID, part string, service enums.ServiceType) (*quote.Draft, error)
	AnalyzeDamage(ctx context.Context, sessionID string, service enums.ServiceType, imageRefs []string) ([]recognition.Candidate, error)
	Breakdown(ctx context.Context, sessionID string) (*pricing.Result, error)
	Finalize(ctx context.Context, sessionID string) (*models.QuoteRecord, error)
}

// StartInput bootstraps a session either from a stored source record or from
// a manually entered vehicle.
type StartInput struct {
	SourceID *uuid.UUID
	Vehicle  *types.Vehicle
}

type sourceLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.SourceRecord, error)
}

type damageAnalyzer interface {
	Enabled() bool
	Analyze(ctx context.Context, req recognition.Request, entry catalog.Entry) []recognition.Candidate
}

type service struct {
	store    SessionStore
	catalog  catalog.Service
	sources  sourceLoader
	analyzer damageAnalyzer
	persist  Persister
	wm       *metrics.WizardMetrics
	logg     *logger.Logger
}

// NewService wires the wizard. Sources, analyzer and persister may be nil
// when the corresponding feature is not deployed; the affected operations
// then fail with a dependency error instead of at startup.
func NewService(store SessionStore, cat catalog.Service, src sourceLoader, analyzer damageAnalyzer, persist Persister, wm *metrics.WizardMetrics, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:    store,
		catalog:  cat,
		sources:  src,
		analyzer: analyzer,
		persist:  persist,
		wm:       wm,
		logg:     logg,
	}, nil
}

// Start creates a draft. When a source record is referenced its vehicle,
// per-service details and replacement vehicle cost are carried over; the
// normalization pipeline runs exactly once here.
func (s *service) Start(ctx context.Context, input StartInput) (*quote.Draft, error) {
	draft := quote.NewDraft(enums.SourceManual)

	if input.SourceID != nil {
		if s.sources == nil {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "source records not available")
		}
		record, err := s.sources.Get(ctx, *input.SourceID)
		if err != nil {
			return nil, err
		}
		draft.SourceKind = record.Kind
		draft.SourceID = &record.ID
		draft.Vehicle = sources.Vehicle(record.Payload)
		draft.ReplacementVehicleCost = sources.ReplacementVehicleCost(record.Payload)

		loaded := normalize.Details(sources.ServiceSections(record.Payload))
		for serviceType, fields := range loaded {
			draft.ServiceDetails[serviceType] = normalize.MergeTiers(
				draft.ServiceDetails[serviceType], normalize.TierQuoteInProgress,
				fields, tierFor(record.Kind),
			)
		}
	}

	if input.Vehicle != nil {
		draft.Vehicle = *input.Vehicle
	}

	s.recompute(ctx, draft)
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.wm.IncSessionStarted()
	return draft, nil
}

func tierFor(kind enums.SourceKind) normalize.Tier {
	if kind == enums.SourcePartnerSubmission {
		return normalize.TierPartnerSubmission
	}
	return normalize.TierIntakeDraft
}

// Get loads the current draft.
func (s *service) Get(ctx context.Context, sessionID string) (*quote.Draft, error) {
	return s.store.Load(ctx, sessionID)
}

// Advance validates the current step and moves forward. A blocked transition
// returns the structured issues without touching the draft; leaving the part
// selection step folds the per-service selections into the work-item list.
func (s *service) Advance(ctx context.Context, sessionID string) (*StepResult, error) {
	draft, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step == enums.StepSummary {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "session is already at the summary step")
	}

	issues, focus := s.validateAdvance(ctx, draft)
	if len(issues) > 0 {
		s.wm.IncRejection(draft.Step.String())
		return &StepResult{Draft: draft, Moved: false, Issues: issues, FocusItem: focus}, nil
	}

	if draft.Step == enums.StepParts {
		draft.WorkItems = workitems.Merge(draft.Services, draft.SelectedParts, draft.WorkItems)
		draft.CheckedWorkItems = workitems.PruneChecklist(draft.CheckedWorkItems, draft.WorkItems)
	}

	draft.Step = s.nextStep(ctx, draft)
	s.recompute(ctx, draft)
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.wm.IncTransition(draft.Step.String())
	return &StepResult{Draft: draft, Moved: true}, nil
}

// Retreat moves one step back. It never validates and never discards data.
func (s *service) Retreat(ctx context.Context, sessionID string) (*StepResult, error) {
	draft, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step == enums.StepVehicle {
		return &StepResult{Draft: draft, Moved: false}, nil
	}

	draft.Step = s.prevStep(ctx, draft)
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.wm.IncTransition(draft.Step.String())
	return &StepResult{Draft: draft, Moved: true}, nil
}

func (s *service) validateAdvance(ctx context.Context, draft *quote.Draft) ([]Issue, string) {
	switch draft.Step {
	case enums.StepVehicle:
		if draft.SourceID == nil && !draft.Vehicle.HasIdentity() {
			return []Issue{{Reason: ReasonMissingVehicle}}, ""
		}
	case enums.StepServices:
		if len(draft.Services) == 0 {
			return []Issue{{Reason: ReasonNoServiceSelected}}, ""
		}
	case enums.StepServiceDetails:
		var issues []Issue
		for _, serviceType := range draft.Services {
			entry, ok := s.catalog.Entry(ctx, serviceType)
			if !ok {
				continue
			}
			for _, field := range entry.Fields {
				if !field.Required {
					continue
				}
				// File fields store attached references in the same map, so
				// the emptiness check covers "at least one file" too.
				value, ok := draft.DetailField(serviceType, field.ID)
				if !ok || strings.TrimSpace(value) == "" {
					issues = append(issues, Issue{Reason: ReasonMissingField, Service: serviceType, FieldID: field.ID})
				}
			}
		}
		return issues, ""
	case enums.StepParts:
		if draft.SelectedPartCount() == 0 {
			return []Issue{{Reason: ReasonNoPartSelected}}, ""
		}
	case enums.StepOperations:
		var issues []Issue
		focus := ""
		for _, item := range draft.WorkItems {
			if len(item.Operations) > 0 {
				continue
			}
			if focus == "" {
				focus = item.Key()
			}
			issues = append(issues, Issue{Reason: ReasonMissingOperations, Service: item.Service, Part: item.Part})
		}
		return issues, focus
	}
	return nil, ""
}

// detailsNeeded reports whether any active service carries an extra-field
// schema; the detail step is skipped entirely otherwise.
func (s *service) detailsNeeded(ctx context.Context, draft *quote.Draft) bool {
	for _, serviceType := range draft.Services {
		if entry, ok := s.catalog.Entry(ctx, serviceType); ok && len(entry.Fields) > 0 {
			return true
		}
	}
	return false
}

func (s *service) nextStep(ctx context.Context, draft *quote.Draft) enums.WizardStep {
	steps := enums.WizardSteps()
	idx := draft.Step.Index()
	if idx < 0 || idx >= len(steps)-1 {
		return draft.Step
	}
	next := steps[idx+1]
	if next == enums.StepServiceDetails && !s.detailsNeeded(ctx, draft) {
		return steps[idx+2]
	}
	return next
}

func (s *service) prevStep(ctx context.Context, draft *quote.Draft) enums.WizardStep {
	steps := enums.WizardSteps()
	idx := draft.Step.Index()
	if idx <= 0 {
		return draft.Step
	}
	prev := steps[idx-1]
	if prev == enums.StepServiceDetails && !s.detailsNeeded(ctx, draft) {
		return steps[idx-2]
	}
	return prev
}

// SetVehicle records a manually entered vehicle.
func (s *service) SetVehicle(ctx context.Context, sessionID string, vehicle types.Vehicle) (*quote.Draft, error) {
	return s.mutate(ctx, sessionID, false, func(ctx context.Context, draft *quote.Draft) error {
		draft.Vehicle = vehicle
		return nil
	})
}

// SelectServices replaces the active service set. Unknown service types are
// rejected; data entered for deselected services is kept for later return.
func (s *service) SelectServices(ctx context.Context, sessionID string, serviceTypes []enums.ServiceType) (*quote.Draft, error) {
	return s.mutate(ctx, sessionID, false, func(ctx context.Context, draft *quote.Draft) error {
		for _, serviceType := range serviceTypes {
			if _, ok := s.catalog.Entry(ctx, serviceType); !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown service type %q", serviceType))
			}
		}
		draft.SetServices(serviceTypes)
		return nil
	})
}

// SetDetailField stores one detail value for an active service.
func (s *service) SetDetailField(ctx context.Context, sessionID string, serviceType enums.ServiceType, fieldID, value string) (*quote.Draft, error) {
	return s.mutate(ctx, sessionID, false, func(ctx context.Context, draft *quote.Draft) error {
		if !draft.HasService(serviceType) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("service %q is not active in this session", serviceType))
		}
		if strings.TrimSpace(fieldID) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "field id required")
		}
		draft.SetDetailField(serviceType, fieldID, value)
		return nil
	})
}

// SelectParts replaces the selected part set for one service. Parts must
// exist in that service's catalog entry. The work-item list is untouched
// until the part step is advanced.
func (s *service) SelectParts(ctx context.Context, sessionID string, serviceType enums.ServiceType, parts []string) (*quote.Draft, error) {
	return s.mutate(ctx, sessionID, false, func(ctx context.Context, draft *quote.Draft) error {
		if !draft.HasService(serviceType) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("service %q is not active in this session", serviceType))
		}
		entry, ok := s.catalog.Entry(ctx, serviceType)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown service type %q", serviceType))
		}
		for _, part := range parts {
			if part != "" && !entry.HasPart(part) {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("part %q is not offered for service %q", part, serviceType))
			}
		}
		draft.SetSelectedParts(serviceType, parts)
		return nil
	})
}

// SetOperations assigns the operations of one work item, persisting the
// selection immediately so nothing is lost when the UI switches tabs.
func (s *service) SetOperations(ctx context.Context, sessionID, part string, serviceType enums.ServiceType, ops []enums.RepairOperation) (*quote.Draft, error) {
	return s.mutate(ctx, sessionID, true, func(ctx context.Context, draft *quote.Draft) error {
		entry, ok := s.catalog.Entry(ctx, serviceType)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown service type %q", serviceType))
		}
		for _, op := range ops {
			if !entry.HasOperation(op) {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("operation %q is not allowed for service %q", op, serviceType))
			}
		}
		if !draft.SetOperations(part, serviceType, ops) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "work item not found")
		}
		return nil
	})
}

// UpsertReplacementPart adds or updates a replacement part.
func (s *service) UpsertReplacementPart(ctx context.Context, sessionID string, part types.ReplacementPart) (*quote.Draft, error) {
	return s.mutate(ctx, sessionID, true, func(ctx context.Context, draft *quote.Draft) error {
		if strings.TrimSpace(part.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "part name required")
		}
		if part.PriceOriginal.IsNegative() || part.PriceAftermarket.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "part prices cannot be negative")
		}
		if part.ServiceType != "" && !draft.HasService(part.ServiceType) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("service %q is not active in this session", part.ServiceType))
		}
		draft.UpsertReplacementPart(part)
		return nil
	})
}

// RemoveReplacementPart deletes a replacement part.
func (s *service) RemoveReplacementPart(ctx context.Context, sessionID string, partID uuid.UUID) (*quote.Draft, error) {
	return s.mutate(ctx, sessionID, true, func(ctx context.Context, draft *quote.Draft) error {
		if !draft.RemoveReplacementPart(partID) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "replacement part not found")
		}
		return nil
	})
}

// SetReplacementVehicleCost records the loaner/replacement vehicle cost.
func (s *service) SetReplacementVehicleCost(ctx context.Context, sessionID string, cost decimal.Decimal) (*quote.Draft, error) {
	return s.mutate(ctx, sessionID, true, func(ctx context.Context, draft *quote.Draft) error {
		if cost.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "replacement vehicle cost cannot be negative")
		}
		draft.ReplacementVehicleCost = cost
		return nil
	})
}

// ToggleChecklist flips the procurement flag of one work item. Checklist
// state never feeds into totals, so no recompute happens here.
func (s *service) ToggleChecklist(ctx context.Context, sessionID, part string, serviceType enums.ServiceType) (*quote.Draft, error) {
	return s.mutate(ctx, sessionID, false, func(ctx context.Context, draft *quote.Draft) error {
		if !draft.ToggleChecklist(part, serviceType) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "work item not found")
		}
		return nil
	})
}

// AnalyzeDamage runs photo recognition for one active service. The result is
// only candidates; nothing is applied to the draft. A response arriving after
// the session moved past part selection is discarded.
func (s *service) AnalyzeDamage(ctx context.Context, sessionID string, serviceType enums.ServiceType, imageRefs []string) ([]recognition.Candidate, error) {
	if s.analyzer == nil || !s.analyzer.Enabled() {
		return nil, nil
	}
	draft, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !draft.HasService(serviceType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("service %q is not active in this session", serviceType))
	}
	entry, ok := s.catalog.Entry(ctx, serviceType)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown service type %q", serviceType))
	}

	candidates := s.analyzer.Analyze(ctx, recognition.Request{
		ImageRefs:         imageRefs,
		ServiceLabel:      entry.Label,
		AllowedParts:      entry.Parts,
		AllowedOperations: entry.Operations,
	}, entry)

	// The session may have moved on while the call was in flight.
	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.Step.Index() > enums.StepParts.Index() {
		s.logg.Info(ctx, "discarding superseded recognition result")
		return nil, nil
	}
	return candidates, nil
}

// Breakdown returns the itemized labor and material lines behind the current
// totals, rounded for presentation.
func (s *service) Breakdown(ctx context.Context, sessionID string) (*pricing.Result, error) {
	draft, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	result := pricing.Compute(pricing.Input{
		WorkItems:              draft.WorkItems,
		ReplacementParts:       draft.ReplacementParts,
		ReplacementVehicleCost: draft.ReplacementVehicleCost,
	}, s.catalog.Rates(ctx)).Rounded()
	return &result, nil
}

// Finalize persists the draft as a quote record and ends the session. A
// failed save keeps the session intact so the user can retry.
func (s *service) Finalize(ctx context.Context, sessionID string) (*models.QuoteRecord, error) {
	if s.persist == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "quote persistence not available")
	}
	draft, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step != enums.StepSummary {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "session has not reached the summary step")
	}

	s.recompute(ctx, draft)
	record := recordFromDraft(draft)

	saved, err := s.persist.SaveQuote(ctx, draft, record)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "finalized quote saved but session cleanup failed", err)
	}
	s.wm.IncFinalized()
	return saved, nil
}

func recordFromDraft(draft *quote.Draft) *models.QuoteRecord {
	serviceNames := make([]string, 0, len(draft.Services))
	for _, serviceType := range draft.Services {
		serviceNames = append(serviceNames, serviceType.String())
	}
	return &models.QuoteRecord{
		Status:                 enums.QuoteStatusFinalized,
		SourceKind:             draft.SourceKind,
		SourceID:               draft.SourceID,
		Vehicle:                draft.Vehicle,
		Services:               pq.StringArray(serviceNames),
		ServiceDetails:         draft.ServiceDetails,
		WorkItems:              draft.WorkItems,
		ReplacementParts:       draft.ReplacementParts,
		ReplacementVehicleCost: draft.ReplacementVehicleCost.Round(2),
		Totals:                 draft.Totals,
		NetOriginal:            draft.Totals.Original.NetSum.Round(2),
		GrossOriginal:          draft.Totals.Original.GrossSum.Round(2),
		NetAftermarket:         draft.Totals.Aftermarket.NetSum.Round(2),
		GrossAftermarket:       draft.Totals.Aftermarket.GrossSum.Round(2),
	}
}

// mutate loads the draft, applies the mutation, optionally recomputes totals
// and saves. The mutation returning an error leaves the stored draft as-is.
func (s *service) mutate(ctx context.Context, sessionID string, reprice bool, fn func(ctx context.Context, draft *quote.Draft) error) (*quote.Draft, error) {
	draft, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(ctx, draft); err != nil {
		return nil, err
	}
	if reprice {
		s.recompute(ctx, draft)
	}
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *service) recompute(ctx context.Context, draft *quote.Draft) {
	start := time.Now()
	result := pricing.Compute(pricing.Input{
		WorkItems:              draft.WorkItems,
		ReplacementParts:       draft.ReplacementParts,
		ReplacementVehicleCost: draft.ReplacementVehicleCost,
	}, s.catalog.Rates(ctx))
	draft.Totals = result.Totals
	s.wm.ObserveRecompute(time.Since(start))
}
