package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// QuoteRecord persists a finalized quotation: the full draft snapshot as
// JSONB plus the headline sums denormalized into numeric columns for listing
// and reporting queries.
type QuoteRecord struct {
	ID                     uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Status                 enums.QuoteStatus       `gorm:"column:status;not null;default:'finalized'"`
	SourceKind             enums.SourceKind        `gorm:"column:source_kind;not null"`
	SourceID               *uuid.UUID              `gorm:"column:source_id;type:uuid"`
	Vehicle                types.Vehicle           `gorm:"column:vehicle;type:jsonb;serializer:json"`
	Services               pq.StringArray          `gorm:"column:services;type:text[]"`
	ServiceDetails         types.ServiceDetails    `gorm:"column:service_details;type:jsonb;serializer:json"`
	WorkItems              []types.WorkItem        `gorm:"column:work_items;type:jsonb;serializer:json"`
	ReplacementParts       []types.ReplacementPart `gorm:"column:replacement_parts;type:jsonb;serializer:json"`
	ReplacementVehicleCost decimal.Decimal         `gorm:"column:replacement_vehicle_cost;type:numeric(12,2);not null;default:0"`
	Totals                 types.Totals            `gorm:"column:totals;type:jsonb;serializer:json"`
	NetOriginal            decimal.Decimal         `gorm:"column:net_original;type:numeric(12,2);not null"`
	GrossOriginal          decimal.Decimal         `gorm:"column:gross_original;type:numeric(12,2);not null"`
	NetAftermarket         decimal.Decimal         `gorm:"column:net_aftermarket;type:numeric(12,2);not null"`
	GrossAftermarket       decimal.Decimal         `gorm:"column:gross_aftermarket;type:numeric(12,2);not null"`
	CreatedAt              time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name.
func (QuoteRecord) TableName() string {
	return "quote_records"
}
