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

// LocaleRepository implements repositories.LocaleRepository.
type LocaleRepository struct {
	db *sqlx.DB
}

// NewLocaleRepository creates a new LocaleRepository.
func NewLocaleRepository(db *sqlx.DB) repositories.LocaleRepository {
	return &LocaleRepository{db: db}
}

// GetByID retrieves a locale descriptor. Returns nil when unknown.
func (r *LocaleRepository) GetByID(ctx context.Context, id string) (*models.Locale, error) {
	query := `
		SELECT id, name, plural_count, plural_forms, is_source, is_approved
		FROM locales
		WHERE id = ?
	`

	locale := &models.Locale{}
	err := r.db.GetContext(ctx, locale, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get locale: %w", err)
	}
	return locale, nil
}

// GetApproved lists the approved non-source locales ordered by name.
func (r *LocaleRepository) GetApproved(ctx context.Context) ([]*models.Locale, error) {
	query, args, err := sq.Select("id", "name", "plural_count", "plural_forms", "is_source", "is_approved").
		From("locales").
		Where(sq.Eq{"is_approved": true, "is_source": false}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build locale query: %w", err)
	}

	var locales []*models.Locale
	if err := r.db.SelectContext(ctx, &locales, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list approved locales: %w", err)
	}
	return locales, nil
}

// Upsert creates or updates a locale descriptor.
func (r *LocaleRepository) Upsert(ctx context.Context, locale *models.Locale) error {
	query := `
		INSERT INTO locales (id, name, plural_count, plural_forms, is_source, is_approved)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			plural_count = excluded.plural_count,
			plural_forms = excluded.plural_forms,
			is_source = excluded.is_source,
			is_approved = excluded.is_approved
	`

	_, err := r.db.ExecContext(ctx, query,
		locale.ID, locale.Name, locale.PluralCount, locale.PluralForms,
		locale.IsSource, locale.IsApproved)
	if err != nil {
		return fmt.Errorf("failed to upsert locale %s: %w", locale.ID, err)
	}
	return nil
}

// GetAccessLevel returns the user's capability on a locale, AccessNone when
// the user is not a member.
func (r *LocaleRepository) GetAccessLevel(ctx context.Context, userID int64, localeID string) (models.AccessLevel, error) {
	query := `SELECT level FROM locale_members WHERE user_id = ? AND locale_id = ?`

	var level int
	err := r.db.QueryRowContext(ctx, query, userID, localeID).Scan(&level)
	if err == sql.ErrNoRows {
		return models.AccessNone, nil
	}
	if err != nil {
		return models.AccessNone, fmt.Errorf("failed to get access level: %w", err)
	}
	return models.AccessLevel(level), nil
}

// SetAccessLevel grants or updates a user's capability on a locale.
func (r *LocaleRepository) SetAccessLevel(ctx context.Context, userID int64, localeID string, level models.AccessLevel) error {
	query := `
		INSERT INTO locale_members (user_id, locale_id, level)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, locale_id) DO UPDATE SET level = excluded.level
	`

	if _, err := r.db.ExecContext(ctx, query, userID, localeID, int(level)); err != nil {
		return fmt.Errorf("failed to set access level: %w", err)
	}
	return nil
}
