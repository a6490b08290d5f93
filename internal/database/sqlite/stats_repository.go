package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/commtrans/ct-backend-go/internal/database/models"
	"github.com/commtrans/ct-backend-go/internal/database/repositories"
	"github.com/jmoiron/sqlx"
)

// StatsRepository implements repositories.StatsRepository.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *sqlx.DB) repositories.StatsRepository {
	return &StatsRepository{db: db}
}

// Get returns the aggregate row for a locale, nil when never computed or
// invalidated.
func (r *StatsRepository) Get(ctx context.Context, localeID string) (*models.LocaleStats, error) {
	query := `
		SELECT locale_id, total, translated, last_updated
		FROM locale_stats
		WHERE locale_id = ?
	`

	stats := &models.LocaleStats{}
	err := r.db.GetContext(ctx, stats, query, localeID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get locale stats: %w", err)
	}
	return stats, nil
}

// GetAll returns the aggregates of every locale that has one.
func (r *StatsRepository) GetAll(ctx context.Context) ([]*models.LocaleStats, error) {
	query, args, err := sq.Select("locale_id", "total", "translated", "last_updated").
		From("locale_stats").
		OrderBy("locale_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}

	var stats []*models.LocaleStats
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list locale stats: %w", err)
	}
	return stats, nil
}

// Invalidate drops the cached aggregate for a locale so the next read
// triggers a recount.
func (r *StatsRepository) Invalidate(ctx context.Context, localeID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM locale_stats WHERE locale_id = ?`, localeID); err != nil {
		return fmt.Errorf("failed to invalidate locale stats: %w", err)
	}
	return nil
}

// Recount recomputes and stores the aggregate for one locale.
func (r *StatsRepository) Recount(ctx context.Context, localeID string) (*models.LocaleStats, error) {
	query := `
		INSERT INTO locale_stats (locale_id, total, translated, last_updated)
		SELECT
			?,
			(SELECT COUNT(*) FROM translatables),
			(SELECT COUNT(*) FROM translations WHERE locale_id = ? AND current = TRUE),
			(SELECT MAX(current_since) FROM translations WHERE locale_id = ? AND current = TRUE)
		ON CONFLICT(locale_id) DO UPDATE SET
			total = excluded.total,
			translated = excluded.translated,
			last_updated = excluded.last_updated
	`

	if _, err := r.db.ExecContext(ctx, query, localeID, localeID, localeID); err != nil {
		return nil, fmt.Errorf("failed to recount locale stats: %w", err)
	}
	return r.Get(ctx, localeID)
}
