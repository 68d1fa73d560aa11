package wizard

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/internal/catalog"
	"github.com/quotewerk/quotewerk-backend/internal/quote"
	"github.com/quotewerk/quotewerk-backend/internal/recognition"
	"github.com/quotewerk/quotewerk-backend/pkg/config"
	"github.com/quotewerk/quotewerk-backend/pkg/db/models"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

type memStore struct {
	drafts  map[string]*quote.Draft
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{drafts: map[string]*quote.Draft{}}
}

func (m *memStore) Save(_ context.Context, draft *quote.Draft) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *draft
	m.drafts[draft.SessionID.String()] = &copied
	return nil
}

func (m *memStore) Load(_ context.Context, sessionID string) (*quote.Draft, error) {
	draft, ok := m.drafts[sessionID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	copied := *draft
	return &copied, nil
}

func (m *memStore) Delete(_ context.Context, sessionID string) error {
	delete(m.drafts, sessionID)
	return nil
}

type stubAnalyzer struct {
	candidates []recognition.Candidate
}

func (s *stubAnalyzer) Enabled() bool { return true }

func (s *stubAnalyzer) Analyze(context.Context, recognition.Request, catalog.Entry) []recognition.Candidate {
	return s.candidates
}

type stubPersister struct {
	saved *models.QuoteRecord
	err   error
}

func (s *stubPersister) SaveQuote(_ context.Context, _ *quote.Draft, record *models.QuoteRecord) (*models.QuoteRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	record.ID = uuid.New()
	s.saved = record
	return record, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "wizard-test", Level: zerolog.Disabled, Output: io.Discard})
}

func testCatalog(t *testing.T) catalog.Service {
	t.Helper()
	cat, err := catalog.NewService(nil, testLogger(), config.PricingConfig{
		VATPercent:           "19",
		PaintHourlyRate:      "85",
		BodyworkHourlyRate:   "95",
		MechanicalHourlyRate: "110",
		MiscHourlyRate:       "75",
	})
	if err != nil {
		t.Fatalf("catalog.NewService: %v", err)
	}
	return cat
}

func newTestService(t *testing.T, store SessionStore, persist Persister, analyzer damageAnalyzer) Service {
	t.Helper()
	svc, err := NewService(store, testCatalog(t), nil, analyzer, persist, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func startManualSession(t *testing.T, svc Service) string {
	t.Helper()
	draft, err := svc.Start(context.Background(), StartInput{
		Vehicle: &types.Vehicle{Make: "VW", Model: "Golf VII"},
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return draft.SessionID.String()
}

func mustAdvance(t *testing.T, svc Service, sessionID string) *quote.Draft {
	t.Helper()
	result, err := svc.Advance(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !result.Moved {
		t.Fatalf("expected transition, blocked with %v", result.Issues)
	}
	return result.Draft
}

func TestWizardFullPaintFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	persist := &stubPersister{}
	svc := newTestService(t, store, persist, nil)
	sessionID := startManualSession(t, svc)

	draft := mustAdvance(t, svc, sessionID)
	if draft.Step != enums.StepServices {
		t.Fatalf("expected services step, got %s", draft.Step)
	}

	if _, err := svc.SelectServices(ctx, sessionID, []enums.ServiceType{enums.ServicePaint}); err != nil {
		t.Fatalf("SelectServices: %v", err)
	}

	// Paint carries a required field schema, so details is not skipped and
	// blocks until farbcode is filled.
	draft = mustAdvance(t, svc, sessionID)
	if draft.Step != enums.StepServiceDetails {
		t.Fatalf("expected details step, got %s", draft.Step)
	}
	result, err := svc.Advance(ctx, sessionID)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !result.Blocked() {
		t.Fatalf("expected a blocked transition")
	}
	if result.Issues[0].Reason != ReasonMissingField || result.Issues[0].FieldID != "farbcode" {
		t.Fatalf("expected missing farbcode, got %+v", result.Issues)
	}

	if _, err := svc.SetDetailField(ctx, sessionID, enums.ServicePaint, "farbcode", "LC9A"); err != nil {
		t.Fatalf("SetDetailField: %v", err)
	}
	draft = mustAdvance(t, svc, sessionID)
	if draft.Step != enums.StepParts {
		t.Fatalf("expected parts step, got %s", draft.Step)
	}

	// No part selected yet: rejection must identify the reason and leave
	// workItems untouched.
	result, err = svc.Advance(ctx, sessionID)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !result.Blocked() || result.Issues[0].Reason != ReasonNoPartSelected {
		t.Fatalf("expected no_part_selected, got %+v", result.Issues)
	}
	if len(result.Draft.WorkItems) != 0 {
		t.Fatalf("rejected advance must not mutate work items")
	}

	if _, err := svc.SelectParts(ctx, sessionID, enums.ServicePaint, []string{"Stoßstange vorne"}); err != nil {
		t.Fatalf("SelectParts: %v", err)
	}
	draft = mustAdvance(t, svc, sessionID)
	if draft.Step != enums.StepOperations {
		t.Fatalf("expected operations step, got %s", draft.Step)
	}
	if len(draft.WorkItems) != 1 {
		t.Fatalf("expected one merged work item, got %v", draft.WorkItems)
	}

	// Operation missing: blocked with focus redirect to the offending item.
	result, err = svc.Advance(ctx, sessionID)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !result.Blocked() || result.Issues[0].Reason != ReasonMissingOperations {
		t.Fatalf("expected missing_operations, got %+v", result.Issues)
	}
	if result.FocusItem != types.WorkItemKey("Stoßstange vorne", enums.ServicePaint) {
		t.Fatalf("expected focus redirect, got %q", result.FocusItem)
	}

	if _, err := svc.SetOperations(ctx, sessionID, "Stoßstange vorne", enums.ServicePaint, []enums.RepairOperation{enums.OpPaint}); err != nil {
		t.Fatalf("SetOperations: %v", err)
	}
	draft = mustAdvance(t, svc, sessionID)
	if draft.Step != enums.StepReplacementParts {
		t.Fatalf("expected replacement parts step, got %s", draft.Step)
	}
	if !draft.Totals.Original.LaborSum.Equal(decimal.NewFromInt(255)) {
		t.Fatalf("expected labor 3.0h * 85 = 255, got %s", draft.Totals.Original.LaborSum)
	}

	updated, err := svc.UpsertReplacementPart(ctx, sessionID, types.ReplacementPart{
		Name:          "Halteclips Satz",
		Quantity:      2,
		PriceOriginal: decimal.NewFromInt(120),
	})
	if err != nil {
		t.Fatalf("UpsertReplacementPart: %v", err)
	}
	if !updated.Totals.Original.PartsSum.Equal(decimal.NewFromInt(240)) {
		t.Fatalf("expected parts sum 240, got %s", updated.Totals.Original.PartsSum)
	}
	if !updated.Totals.Aftermarket.PartsSum.Equal(decimal.NewFromInt(240)) {
		t.Fatalf("aftermarket must default to the original price, got %s", updated.Totals.Aftermarket.PartsSum)
	}

	draft = mustAdvance(t, svc, sessionID)
	if draft.Step != enums.StepSummary {
		t.Fatalf("expected summary step, got %s", draft.Step)
	}

	record, err := svc.Finalize(ctx, sessionID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if record.Status != enums.QuoteStatusFinalized {
		t.Fatalf("expected finalized status, got %s", record.Status)
	}
	if _, err := svc.Get(ctx, sessionID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("session must be gone after finalize, got %v", err)
	}
}

func TestWizardSkipsDetailsWithoutSchema(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, newMemStore(), nil, nil)
	sessionID := startManualSession(t, svc)

	mustAdvance(t, svc, sessionID)
	if _, err := svc.SelectServices(ctx, sessionID, []enums.ServiceType{enums.ServiceMechanical}); err != nil {
		t.Fatalf("SelectServices: %v", err)
	}

	draft := mustAdvance(t, svc, sessionID)
	if draft.Step != enums.StepParts {
		t.Fatalf("details must be skipped for schema-less services, got %s", draft.Step)
	}

	// Retreating skips it in the other direction too.
	result, err := svc.Retreat(ctx, sessionID)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if result.Draft.Step != enums.StepServices {
		t.Fatalf("expected services step after retreat, got %s", result.Draft.Step)
	}
}

func TestWizardRetreatPreservesData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, newMemStore(), nil, nil)
	sessionID := startManualSession(t, svc)

	mustAdvance(t, svc, sessionID)
	if _, err := svc.SelectServices(ctx, sessionID, []enums.ServiceType{enums.ServicePaint}); err != nil {
		t.Fatalf("SelectServices: %v", err)
	}
	mustAdvance(t, svc, sessionID)
	if _, err := svc.SetDetailField(ctx, sessionID, enums.ServicePaint, "farbcode", "LY7W"); err != nil {
		t.Fatalf("SetDetailField: %v", err)
	}

	result, err := svc.Retreat(ctx, sessionID)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if result.Draft.Step != enums.StepServices {
		t.Fatalf("expected services step, got %s", result.Draft.Step)
	}
	if value, _ := result.Draft.DetailField(enums.ServicePaint, "farbcode"); value != "LY7W" {
		t.Fatalf("retreat must never discard entered data, got %q", value)
	}

	// Retreat at the first step is a harmless no-op.
	for result.Draft.Step != enums.StepVehicle {
		if result, err = svc.Retreat(ctx, sessionID); err != nil {
			t.Fatalf("Retreat: %v", err)
		}
	}
	result, err = svc.Retreat(ctx, sessionID)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if result.Moved {
		t.Fatalf("cannot retreat before the first step")
	}
}

func TestWizardMergeIsIdempotentAcrossRevisits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, newMemStore(), nil, nil)
	sessionID := startManualSession(t, svc)

	mustAdvance(t, svc, sessionID)
	if _, err := svc.SelectServices(ctx, sessionID, []enums.ServiceType{enums.ServiceMechanical}); err != nil {
		t.Fatalf("SelectServices: %v", err)
	}
	mustAdvance(t, svc, sessionID)
	if _, err := svc.SelectParts(ctx, sessionID, enums.ServiceMechanical, []string{"Scheinwerfer links"}); err != nil {
		t.Fatalf("SelectParts: %v", err)
	}
	first := mustAdvance(t, svc, sessionID)
	if _, err := svc.SetOperations(ctx, sessionID, "Scheinwerfer links", enums.ServiceMechanical, []enums.RepairOperation{enums.OpReplace}); err != nil {
		t.Fatalf("SetOperations: %v", err)
	}

	// Go back to parts and forward again without changing the selection.
	if _, err := svc.Retreat(ctx, sessionID); err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	second := mustAdvance(t, svc, sessionID)

	if len(second.WorkItems) != len(first.WorkItems) {
		t.Fatalf("merge must not duplicate items: %v", second.WorkItems)
	}
	if !reflect.DeepEqual(second.WorkItems[0].Operations, []enums.RepairOperation{enums.OpReplace}) {
		t.Fatalf("operations must survive a re-merge, got %v", second.WorkItems[0].Operations)
	}
}

func TestWizardRejectsUnknownPart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, newMemStore(), nil, nil)
	sessionID := startManualSession(t, svc)

	mustAdvance(t, svc, sessionID)
	if _, err := svc.SelectServices(ctx, sessionID, []enums.ServiceType{enums.ServiceMechanical}); err != nil {
		t.Fatalf("SelectServices: %v", err)
	}

	_, err := svc.SelectParts(ctx, sessionID, enums.ServiceMechanical, []string{"Warpantrieb"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestWizardAdvanceAtSummaryConflicts(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(t, store, nil, nil)
	sessionID := startManualSession(t, svc)

	draft, _ := store.Load(context.Background(), sessionID)
	draft.Step = enums.StepSummary
	store.Save(context.Background(), draft)

	_, err := svc.Advance(context.Background(), sessionID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected a state conflict, got %v", err)
	}
}

func TestWizardFinalizeFailureRetainsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	persist := &stubPersister{err: errors.New("connection refused")}
	svc := newTestService(t, store, persist, nil)
	sessionID := startManualSession(t, svc)

	draft, _ := store.Load(ctx, sessionID)
	draft.Step = enums.StepSummary
	store.Save(ctx, draft)

	if _, err := svc.Finalize(ctx, sessionID); err == nil {
		t.Fatalf("expected the persistence failure to surface")
	}
	if _, err := svc.Get(ctx, sessionID); err != nil {
		t.Fatalf("failed save must retain the draft: %v", err)
	}
}

func TestWizardDiscardsSupersededRecognition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	analyzer := &stubAnalyzer{candidates: []recognition.Candidate{{Part: "Motorhaube"}}}
	svc := newTestService(t, store, nil, analyzer)
	sessionID := startManualSession(t, svc)

	mustAdvance(t, svc, sessionID)
	if _, err := svc.SelectServices(ctx, sessionID, []enums.ServiceType{enums.ServicePaint}); err != nil {
		t.Fatalf("SelectServices: %v", err)
	}

	// While still at or before part selection the candidates flow through.
	candidates, err := svc.AnalyzeDamage(ctx, sessionID, enums.ServicePaint, []string{"img-1"})
	if err != nil {
		t.Fatalf("AnalyzeDamage: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected one candidate, got %v", candidates)
	}

	// Once the session moved past part selection the result is discarded.
	draft, _ := store.Load(ctx, sessionID)
	draft.Step = enums.StepReplacementParts
	store.Save(ctx, draft)

	candidates, err = svc.AnalyzeDamage(ctx, sessionID, enums.ServicePaint, []string{"img-1"})
	if err != nil {
		t.Fatalf("AnalyzeDamage: %v", err)
	}
	if candidates != nil {
		t.Fatalf("superseded result must be discarded, got %v", candidates)
	}
}

func TestWizardChecklistNeverChangesTotals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, newMemStore(), nil, nil)
	sessionID := startManualSession(t, svc)

	mustAdvance(t, svc, sessionID)
	if _, err := svc.SelectServices(ctx, sessionID, []enums.ServiceType{enums.ServiceMechanical}); err != nil {
		t.Fatalf("SelectServices: %v", err)
	}
	mustAdvance(t, svc, sessionID)
	if _, err := svc.SelectParts(ctx, sessionID, enums.ServiceMechanical, []string{"Scheinwerfer links"}); err != nil {
		t.Fatalf("SelectParts: %v", err)
	}
	mustAdvance(t, svc, sessionID)
	if _, err := svc.SetOperations(ctx, sessionID, "Scheinwerfer links", enums.ServiceMechanical, []enums.RepairOperation{enums.OpReplace}); err != nil {
		t.Fatalf("SetOperations: %v", err)
	}

	before, _ := svc.Get(ctx, sessionID)
	after, err := svc.ToggleChecklist(ctx, sessionID, "Scheinwerfer links", enums.ServiceMechanical)
	if err != nil {
		t.Fatalf("ToggleChecklist: %v", err)
	}
	if !after.CheckedWorkItems[types.WorkItemKey("Scheinwerfer links", enums.ServiceMechanical)] {
		t.Fatalf("expected the checklist flag to flip")
	}
	if !reflect.DeepEqual(before.Totals, after.Totals) {
		t.Fatalf("checklist state must never influence totals")
	}
}
