package types

import (
	"fmt"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
)

// WorkItem is a selected vehicle part scoped to one service type, together
// with the repair operations chosen for it. The (Part, Service) pair is the
// item's identity; the operations set may be empty only until the operations
// step is validated.
type WorkItem struct {
	Part       string                  `json:"part"`
	Service    enums.ServiceType       `json:"service"`
	Operations []enums.RepairOperation `json:"operations"`
}

// Key returns the stable identity of the work item.
func (w WorkItem) Key() string {
	return WorkItemKey(w.Part, w.Service)
}

// WorkItemKey builds the canonical key for a (part, service) pair.
func WorkItemKey(part string, service enums.ServiceType) string {
	return fmt.Sprintf("%s|%s", part, service)
}

// HasOperation reports whether the operation is already selected.
func (w WorkItem) HasOperation(op enums.RepairOperation) bool {
	for _, candidate := range w.Operations {
		if candidate == op {
			return true
		}
	}
	return false
}
