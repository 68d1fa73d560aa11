package quote

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

func TestSetServicesDeduplicatesAndPreservesDetails(t *testing.T) {
	t.Parallel()

	draft := NewDraft(enums.SourceManual)
	draft.SetServices([]enums.ServiceType{enums.ServicePaint, enums.ServiceTires, enums.ServicePaint})
	if len(draft.Services) != 2 {
		t.Fatalf("expected duplicates dropped, got %v", draft.Services)
	}

	draft.SetDetailField(enums.ServiceTires, "reifentyp", "sommer")
	draft.SetServices([]enums.ServiceType{enums.ServicePaint})
	draft.SetServices([]enums.ServiceType{enums.ServicePaint, enums.ServiceTires})

	if value, ok := draft.DetailField(enums.ServiceTires, "reifentyp"); !ok || value != "sommer" {
		t.Fatalf("detail data lost on service round trip, got %q ok=%v", value, ok)
	}
}

func TestSetSelectedPartsDropsEmptyAndDuplicates(t *testing.T) {
	t.Parallel()

	draft := NewDraft(enums.SourceManual)
	draft.SetServices([]enums.ServiceType{enums.ServicePaint})
	draft.SetSelectedParts(enums.ServicePaint, []string{"stossstange vorne", "", "stossstange vorne", "motorhaube"})

	parts := draft.SelectedParts[enums.ServicePaint]
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %v", parts)
	}
	if draft.SelectedPartCount() != 2 {
		t.Fatalf("expected count 2, got %d", draft.SelectedPartCount())
	}
}

func TestSetOperationsUnknownWorkItem(t *testing.T) {
	t.Parallel()

	draft := NewDraft(enums.SourceManual)
	if ok := draft.SetOperations("motorhaube", enums.ServicePaint, []enums.RepairOperation{enums.OpPaint}); ok {
		t.Fatal("expected SetOperations to fail without a matching work item")
	}
}

func TestUpsertReplacementPartDefaultsAftermarket(t *testing.T) {
	t.Parallel()

	draft := NewDraft(enums.SourceManual)
	part := draft.UpsertReplacementPart(types.ReplacementPart{
		Name:          "scheinwerfer links",
		Quantity:      2,
		PriceOriginal: decimal.NewFromInt(120),
	})

	if !part.PriceAftermarket.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected aftermarket price to default to original, got %s", part.PriceAftermarket)
	}

	part.PriceAftermarket = decimal.NewFromInt(80)
	updated := draft.UpsertReplacementPart(part)
	if len(draft.ReplacementParts) != 1 {
		t.Fatalf("expected upsert to update in place, got %d parts", len(draft.ReplacementParts))
	}
	if !updated.PriceAftermarket.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected explicit aftermarket price kept, got %s", updated.PriceAftermarket)
	}
}

func TestRemoveReplacementPart(t *testing.T) {
	t.Parallel()

	draft := NewDraft(enums.SourceManual)
	part := draft.UpsertReplacementPart(types.ReplacementPart{Name: "spiegel", Quantity: 1, PriceOriginal: decimal.NewFromInt(40)})

	if !draft.RemoveReplacementPart(part.ID) {
		t.Fatal("expected removal to succeed")
	}
	if draft.RemoveReplacementPart(uuid.New()) {
		t.Fatal("expected removal of unknown id to report false")
	}
}

func TestToggleChecklistRequiresWorkItem(t *testing.T) {
	t.Parallel()

	draft := NewDraft(enums.SourceManual)
	if draft.ToggleChecklist("motorhaube", enums.ServicePaint) {
		t.Fatal("expected toggle to fail without work item")
	}

	draft.WorkItems = []types.WorkItem{{Part: "motorhaube", Service: enums.ServicePaint}}
	if !draft.ToggleChecklist("motorhaube", enums.ServicePaint) {
		t.Fatal("expected toggle to succeed")
	}
	key := types.WorkItemKey("motorhaube", enums.ServicePaint)
	if !draft.CheckedWorkItems[key] {
		t.Fatal("expected checklist entry to be set")
	}
	draft.ToggleChecklist("motorhaube", enums.ServicePaint)
	if draft.CheckedWorkItems[key] {
		t.Fatal("expected checklist entry to be cleared")
	}
}
