package wizard

import (
	"github.com/quotewerk/quotewerk-backend/internal/quote"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
)

// Issue reasons. Every blocked transition names one of these instead of a
// generic failure flag.
const (
	ReasonMissingVehicle    = "missing_vehicle"
	ReasonNoServiceSelected = "no_service_selected"
	ReasonMissingField      = "missing_field"
	ReasonNoPartSelected    = "no_part_selected"
	ReasonMissingOperations = "missing_operations"
)

// Issue is one structured validation failure.
type Issue struct {
	Reason  string            `json:"reason"`
	Service enums.ServiceType `json:"service,omitempty"`
	FieldID string            `json:"field_id,omitempty"`
	Part    string            `json:"part,omitempty"`
}

// StepResult is the outcome of an advance or retreat. A blocked advance
// carries the issues and, for the operations step, the key of the work item
// the UI should focus; the draft itself is always returned unchanged in that
// case.
type StepResult struct {
	Draft     *quote.Draft `json:"draft"`
	Moved     bool         `json:"moved"`
	Issues    []Issue      `json:"issues,omitempty"`
	FocusItem string       `json:"focus_item,omitempty"`
}

// Blocked reports whether validation stopped the transition.
func (r StepResult) Blocked() bool {
	return !r.Moved && len(r.Issues) > 0
}
