package quote

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quotewerk/quotewerk-backend/pkg/db/models"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
)

// Repository persists finalized quotes.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the quote record.
func (r *Repository) Create(ctx context.Context, record *models.QuoteRecord) (*models.QuoteRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Status == "" {
		record.Status = enums.QuoteStatusFinalized
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert quote record")
	}
	return record, nil
}

// Get loads one quote by id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.QuoteRecord, error) {
	var record models.QuoteRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load quote record")
	}
	return &record, nil
}

// List returns quotes newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]models.QuoteRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var records []models.QuoteRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list quote records")
	}
	return records, nil
}
