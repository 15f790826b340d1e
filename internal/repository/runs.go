package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRepository keeps a history of feed generations plus the latest
// generated document for later static serving.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.FeedRun) error
	SaveLatestFeed(ctx context.Context, xml string, generatedAt time.Time) error
}

type runRepository struct {
	db *pgxpool.Pool
}

func NewRunRepository(db *pgxpool.Pool) RunRepository {
	return &runRepository{
		db: db,
	}
}

func (r *runRepository) SaveRun(ctx context.Context, run domain.FeedRun) error {
	query := `
	INSERT INTO feed_runs (generated_at, product_count, item_count, success, error)
	VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, run.GeneratedAt, run.ProductCount, run.ItemCount, run.Success, run.Error)
	if err != nil {
		return fmt.Errorf("failed to save feed run: %w", err)
	}

	return nil
}

func (r *runRepository) SaveLatestFeed(ctx context.Context, xml string, generatedAt time.Time) error {
	query := `
	INSERT INTO feed_documents (id, payload, generated_at)
	VALUES (1, $1, $2)
	ON CONFLICT (id)
	DO UPDATE SET payload = $1, generated_at = $2`
	_, err := r.db.Exec(ctx, query, xml, generatedAt)
	if err != nil {
		return fmt.Errorf("failed to save latest feed: %w", err)
	}

	return nil
}
