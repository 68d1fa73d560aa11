package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// CatalogEntry is the reference data for one service type: the selectable
// parts, the allowed repair operations and the optional extra-field schema.
// Read-only to the quoting core.
type CatalogEntry struct {
	ServiceType enums.ServiceType `gorm:"column:service_type;primaryKey"`
	Label       string            `gorm:"column:label;not null"`
	Parts       pq.StringArray    `gorm:"column:parts;type:text[]"`
	Operations  pq.StringArray    `gorm:"column:operations;type:text[]"`
	FieldSchema []types.FieldSpec `gorm:"column:field_schema;type:jsonb;serializer:json"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name.
func (CatalogEntry) TableName() string {
	return "catalog_entries"
}
