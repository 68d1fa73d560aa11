package workitems

import (
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// Merge folds the per-service selected-part sets into a unified work-item
// list. The list is rebuilt from scratch on every call, which makes the
// operation idempotent: one item per (service, part) pair, in service order
// then selection order. Operation sets already assigned to surviving pairs
// are carried over so a re-merge never loses step-4 input.
func Merge(services []enums.ServiceType, selected types.SelectedParts, existing []types.WorkItem) []types.WorkItem {
	carried := make(map[string][]enums.RepairOperation, len(existing))
	for _, item := range existing {
		carried[item.Key()] = item.Operations
	}

	var merged []types.WorkItem
	seen := map[string]struct{}{}
	for _, service := range services {
		for _, part := range selected[service] {
			key := types.WorkItemKey(part, service)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, types.WorkItem{
				Part:       part,
				Service:    service,
				Operations: carried[key],
			})
		}
	}
	return merged
}

// MissingOperations returns the keys of work items that have no operation
// assigned yet, in list order. The first entry is where the operations step
// should put focus.
func MissingOperations(items []types.WorkItem) []string {
	var missing []string
	for _, item := range items {
		if len(item.Operations) == 0 {
			missing = append(missing, item.Key())
		}
	}
	return missing
}

// PruneChecklist drops checklist entries whose work item no longer exists.
func PruneChecklist(checked map[string]bool, items []types.WorkItem) map[string]bool {
	if len(checked) == 0 {
		return checked
	}
	valid := make(map[string]struct{}, len(items))
	for _, item := range items {
		valid[item.Key()] = struct{}{}
	}
	next := make(map[string]bool, len(checked))
	for key, value := range checked {
		if _, ok := valid[key]; ok {
			next[key] = value
		}
	}
	return next
}
