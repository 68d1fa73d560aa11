package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSettings holds the configured hourly rates and VAT percentage.
// A single row; the newest row wins when several exist.
type RateSettings struct {
	ID             int             `gorm:"column:id;primaryKey;autoIncrement"`
	PaintRate      decimal.Decimal `gorm:"column:paint_rate;type:numeric(8,2);not null"`
	BodyworkRate   decimal.Decimal `gorm:"column:bodywork_rate;type:numeric(8,2);not null"`
	MechanicalRate decimal.Decimal `gorm:"column:mechanical_rate;type:numeric(8,2);not null"`
	MiscRate       decimal.Decimal `gorm:"column:misc_rate;type:numeric(8,2);not null"`
	VATPercent     decimal.Decimal `gorm:"column:vat_percent;type:numeric(5,2);not null"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name.
func (RateSettings) TableName() string {
	return "rate_settings"
}
