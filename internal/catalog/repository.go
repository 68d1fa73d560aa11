package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quotewerk/quotewerk-backend/pkg/db/models"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
)

// Repository loads catalog reference data.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListEntries returns every catalog entry ordered by service type.
func (r *Repository) ListEntries(ctx context.Context) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	if err := r.db.WithContext(ctx).Order("service_type ASC").Find(&entries).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list catalog entries")
	}
	return entries, nil
}

// LatestRates returns the newest rate settings row, or nil when none exists.
func (r *Repository) LatestRates(ctx context.Context) (*models.RateSettings, error) {
	var settings models.RateSettings
	err := r.db.WithContext(ctx).Order("id DESC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load rate settings")
	}
	return &settings, nil
}
