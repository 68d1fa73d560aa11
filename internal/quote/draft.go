package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// Draft is the root aggregate for one quoting session. It is an explicit
// value handed through every wizard operation; nothing about it is ambient.
// Totals are derived state and recomputed after every mutation, never edited.
type Draft struct {
	SessionID  uuid.UUID        `json:"session_id"`
	SourceKind enums.SourceKind `json:"source_kind"`
	SourceID   *uuid.UUID       `json:"source_id,omitempty"`

	Step    enums.WizardStep `json:"step"`
	Vehicle types.Vehicle    `json:"vehicle"`

	Services               []enums.ServiceType     `json:"services"`
	ServiceDetails         types.ServiceDetails    `json:"service_details"`
	SelectedParts          types.SelectedParts     `json:"selected_parts"`
	WorkItems              []types.WorkItem        `json:"work_items"`
	ReplacementParts       []types.ReplacementPart `json:"replacement_parts"`
	ReplacementVehicleCost decimal.Decimal         `json:"replacement_vehicle_cost"`
	CheckedWorkItems       map[string]bool         `json:"checked_work_items"`

	Totals types.Totals `json:"totals"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDraft starts an empty draft at the vehicle step.
func NewDraft(sourceKind enums.SourceKind) *Draft {
	now := time.Now().UTC()
	return &Draft{
		SessionID:        uuid.New(),
		SourceKind:       sourceKind,
		Step:             enums.StepVehicle,
		ServiceDetails:   types.ServiceDetails{},
		SelectedParts:    types.SelectedParts{},
		CheckedWorkItems: map[string]bool{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// HasService reports whether the service type is active in this session.
func (d *Draft) HasService(service enums.ServiceType) bool {
	for _, candidate := range d.Services {
		if candidate == service {
			return true
		}
	}
	return false
}

// SetServices replaces the active service set, preserving order and dropping
// duplicates. Detail fields, part selections and work items belonging to
// services that stay active are kept; nothing is deleted for removed services
// either, so returning to a service later restores prior input.
func (d *Draft) SetServices(services []enums.ServiceType) {
	seen := map[enums.ServiceType]struct{}{}
	next := make([]enums.ServiceType, 0, len(services))
	for _, service := range services {
		if _, dup := seen[service]; dup {
			continue
		}
		seen[service] = struct{}{}
		next = append(next, service)
	}
	d.Services = next
	d.touch()
}

// PrimaryService returns the first active service, if any.
func (d *Draft) PrimaryService() (enums.ServiceType, bool) {
	if len(d.Services) == 0 {
		return "", false
	}
	return d.Services[0], true
}

// SetDetailField records one canonical detail value for a service.
func (d *Draft) SetDetailField(service enums.ServiceType, fieldID, value string) {
	if d.ServiceDetails == nil {
		d.ServiceDetails = types.ServiceDetails{}
	}
	fields := d.ServiceDetails[service]
	if fields == nil {
		fields = map[string]string{}
		d.ServiceDetails[service] = fields
	}
	fields[fieldID] = value
	d.touch()
}

// DetailField returns the canonical detail value, if set.
func (d *Draft) DetailField(service enums.ServiceType, fieldID string) (string, bool) {
	fields, ok := d.ServiceDetails[service]
	if !ok {
		return "", false
	}
	value, ok := fields[fieldID]
	return value, ok
}

// SetSelectedParts replaces the selected part set for one service.
func (d *Draft) SetSelectedParts(service enums.ServiceType, parts []string) {
	if d.SelectedParts == nil {
		d.SelectedParts = types.SelectedParts{}
	}
	seen := map[string]struct{}{}
	next := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		next = append(next, part)
	}
	d.SelectedParts[service] = next
	d.touch()
}

// SelectedPartCount counts selected parts across every active service.
func (d *Draft) SelectedPartCount() int {
	total := 0
	for _, service := range d.Services {
		total += len(d.SelectedParts[service])
	}
	return total
}

// WorkItem returns a pointer to the work item with the given identity.
func (d *Draft) WorkItem(part string, service enums.ServiceType) *types.WorkItem {
	for i := range d.WorkItems {
		if d.WorkItems[i].Part == part && d.WorkItems[i].Service == service {
			return &d.WorkItems[i]
		}
	}
	return nil
}

// SetOperations assigns the operation set for one work item. Returns false
// when no work item with that identity exists.
func (d *Draft) SetOperations(part string, service enums.ServiceType, ops []enums.RepairOperation) bool {
	item := d.WorkItem(part, service)
	if item == nil {
		return false
	}
	seen := map[enums.RepairOperation]struct{}{}
	next := make([]enums.RepairOperation, 0, len(ops))
	for _, op := range ops {
		if _, dup := seen[op]; dup {
			continue
		}
		seen[op] = struct{}{}
		next = append(next, op)
	}
	item.Operations = next
	d.touch()
	return true
}

// UpsertReplacementPart adds or updates one replacement part by ID, applying
// the aftermarket-price default.
func (d *Draft) UpsertReplacementPart(part types.ReplacementPart) types.ReplacementPart {
	if part.ID == uuid.Nil {
		part.ID = uuid.New()
	}
	part = part.Normalize()
	for i := range d.ReplacementParts {
		if d.ReplacementParts[i].ID == part.ID {
			d.ReplacementParts[i] = part
			d.touch()
			return part
		}
	}
	d.ReplacementParts = append(d.ReplacementParts, part)
	d.touch()
	return part
}

// RemoveReplacementPart deletes the part with the given ID, reporting whether
// anything was removed.
func (d *Draft) RemoveReplacementPart(id uuid.UUID) bool {
	for i := range d.ReplacementParts {
		if d.ReplacementParts[i].ID == id {
			d.ReplacementParts = append(d.ReplacementParts[:i], d.ReplacementParts[i+1:]...)
			d.touch()
			return true
		}
	}
	return false
}

// ToggleChecklist flips the ordered/not-ordered flag for a work item.
// Display state only; totals never read it.
func (d *Draft) ToggleChecklist(part string, service enums.ServiceType) bool {
	if d.WorkItem(part, service) == nil {
		return false
	}
	if d.CheckedWorkItems == nil {
		d.CheckedWorkItems = map[string]bool{}
	}
	key := types.WorkItemKey(part, service)
	d.CheckedWorkItems[key] = !d.CheckedWorkItems[key]
	d.touch()
	return true
}

func (d *Draft) touch() {
	d.UpdatedAt = time.Now().UTC()
}
