package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
)

// SourceRecord stores one upstream vehicle record (an intake draft or a
// partner submission) as an opaque payload. The core never assumes a schema
// beyond what the normalization pipeline can recognize.
type SourceRecord struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      enums.SourceKind `gorm:"column:kind;not null"`
	Payload   map[string]any   `gorm:"column:payload;type:jsonb;serializer:json"`
	QuoteID   *uuid.UUID       `gorm:"column:quote_id;type:uuid"`
	Summary   map[string]any   `gorm:"column:summary;type:jsonb;serializer:json"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name.
func (SourceRecord) TableName() string {
	return "source_records"
}
