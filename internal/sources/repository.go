// Package sources loads the upstream vehicle records a quote can start from.
// Payloads are opaque JSON; the extraction helpers pull out what the wizard
// needs without assuming one fixed schema, since intake drafts and partner
// submissions disagree on structure.
package sources

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quotewerk/quotewerk-backend/pkg/db/models"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
)

// Repository persists source records.
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

// Get loads one source record by id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.SourceRecord, error) {
	var record models.SourceRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "source record not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load source record")
	}
	return &record, nil
}

// List returns the most recent records of one kind, newest first.
func (r *Repository) List(ctx context.Context, kind string, limit int) ([]models.SourceRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	var records []models.SourceRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list source records")
	}
	return records, nil
}

// Create stores a new source record.
func (r *Repository) Create(ctx context.Context, record *models.SourceRecord) (*models.SourceRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert source record")
	}
	return record, nil
}

// LinkQuote marks the record as quoted and stores the summary fields the
// listing views show next to it.
func (r *Repository) LinkQuote(ctx context.Context, sourceID, quoteID uuid.UUID, summary map[string]any) error {
	updates := models.SourceRecord{QuoteID: &quoteID, Summary: summary}
	result := r.db.WithContext(ctx).
		Model(&models.SourceRecord{}).
		Where("id = ?", sourceID).
		Select("quote_id", "summary").
		Updates(updates)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "db: link quote to source record")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "source record not found")
	}
	return nil
}
