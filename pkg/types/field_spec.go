package types

import "github.com/quotewerk/quotewerk-backend/pkg/enums"

// FieldSpec describes one service-detail field of a catalog entry's
// extra-field schema.
type FieldSpec struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Type     enums.FieldType `json:"type"`
	Options  []string        `json:"options,omitempty"`
	Required bool            `json:"required"`
}

// ServiceDetails holds canonical per-service extra fields keyed by field id.
type ServiceDetails map[enums.ServiceType]map[string]string

// SelectedParts holds per-service multi-selected part names.
type SelectedParts map[enums.ServiceType][]string
