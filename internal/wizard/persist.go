package wizard

import (
	"context"

	"gorm.io/gorm"

	"github.com/quotewerk/quotewerk-backend/internal/quote"
	"github.com/quotewerk/quotewerk-backend/internal/sources"
	"github.com/quotewerk/quotewerk-backend/pkg/db"
	"github.com/quotewerk/quotewerk-backend/pkg/db/models"
)

// Persister stores a finalized quote.
type Persister interface {
	SaveQuote(ctx context.Context, draft *quote.Draft, record *models.QuoteRecord) (*models.QuoteRecord, error)
}

// DBPersister writes the quote record and the source-record backlink in one
// transaction, so a listing never shows a quoted source without its quote.
type DBPersister struct {
	db      *db.Client
	quotes  *quote.Repository
	sources *sources.Repository
}

// NewDBPersister wires the transactional persister.
func NewDBPersister(client *db.Client, quotes *quote.Repository, srcs *sources.Repository) *DBPersister {
	return &DBPersister{db: client, quotes: quotes, sources: srcs}
}

// SaveQuote implements Persister.
func (p *DBPersister) SaveQuote(ctx context.Context, draft *quote.Draft, record *models.QuoteRecord) (*models.QuoteRecord, error) {
	var saved *models.QuoteRecord
	err := p.db.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := p.quotes.WithTx(tx).Create(ctx, record)
		if err != nil {
			return err
		}
		saved = created

		if draft.SourceID != nil {
			summary := sources.Summary(created.ID.String(), draft.Totals, draft.Services)
			if err := p.sources.WithTx(tx).LinkQuote(ctx, *draft.SourceID, created.ID, summary); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
