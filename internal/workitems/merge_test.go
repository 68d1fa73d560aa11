package workitems

import (
	"reflect"
	"testing"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

func TestMergeBuildsOneItemPerPair(t *testing.T) {
	t.Parallel()

	services := []enums.ServiceType{enums.ServicePaint, enums.ServiceBodywork}
	selected := types.SelectedParts{
		enums.ServicePaint:    {"stossstange vorne", "motorhaube"},
		enums.ServiceBodywork: {"stossstange vorne"},
	}

	merged := Merge(services, selected, nil)
	if len(merged) != 3 {
		t.Fatalf("expected 3 work items, got %d", len(merged))
	}
	// Same part under two services stays two distinct items.
	if merged[0].Service != enums.ServicePaint || merged[2].Service != enums.ServiceBodywork {
		t.Fatalf("unexpected ordering: %+v", merged)
	}
}

func TestMergeIsIdempotentAndKeepsOperations(t *testing.T) {
	t.Parallel()

	services := []enums.ServiceType{enums.ServicePaint}
	selected := types.SelectedParts{enums.ServicePaint: {"motorhaube", "dach"}}

	first := Merge(services, selected, nil)
	first[0].Operations = []enums.RepairOperation{enums.OpPaint, enums.OpDentPull}

	second := Merge(services, selected, first)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("merge not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	third := Merge(services, selected, second)
	if !reflect.DeepEqual(second, third) {
		t.Fatalf("repeated merge changed the list:\n%+v\n%+v", second, third)
	}
}

func TestMergeDropsDeselectedParts(t *testing.T) {
	t.Parallel()

	services := []enums.ServiceType{enums.ServicePaint}
	selected := types.SelectedParts{enums.ServicePaint: {"motorhaube", "dach"}}
	merged := Merge(services, selected, nil)
	merged[1].Operations = []enums.RepairOperation{enums.OpPaint}

	selected[enums.ServicePaint] = []string{"motorhaube"}
	remerged := Merge(services, selected, merged)
	if len(remerged) != 1 {
		t.Fatalf("expected deselected part removed, got %+v", remerged)
	}
	if remerged[0].Part != "motorhaube" {
		t.Fatalf("unexpected survivor %+v", remerged[0])
	}
}

func TestMissingOperations(t *testing.T) {
	t.Parallel()

	items := []types.WorkItem{
		{Part: "motorhaube", Service: enums.ServicePaint, Operations: []enums.RepairOperation{enums.OpPaint}},
		{Part: "dach", Service: enums.ServicePaint},
		{Part: "felge", Service: enums.ServiceTires},
	}

	missing := MissingOperations(items)
	want := []string{
		types.WorkItemKey("dach", enums.ServicePaint),
		types.WorkItemKey("felge", enums.ServiceTires),
	}
	if !reflect.DeepEqual(missing, want) {
		t.Fatalf("expected %v, got %v", want, missing)
	}
}

func TestPruneChecklist(t *testing.T) {
	t.Parallel()

	items := []types.WorkItem{{Part: "motorhaube", Service: enums.ServicePaint}}
	checked := map[string]bool{
		types.WorkItemKey("motorhaube", enums.ServicePaint): true,
		types.WorkItemKey("dach", enums.ServicePaint):       true,
	}

	pruned := PruneChecklist(checked, items)
	if len(pruned) != 1 {
		t.Fatalf("expected stale entries removed, got %v", pruned)
	}
	if !pruned[types.WorkItemKey("motorhaube", enums.ServicePaint)] {
		t.Fatal("expected surviving entry to keep its value")
	}
}
