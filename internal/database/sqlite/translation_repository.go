package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/commtrans/ct-backend-go/internal/database/models"
	"github.com/commtrans/ct-backend-go/internal/database/repositories"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// insertArity is the number of bound parameters per row of the batched
// insert statement.
const insertArity = 13

// TranslationRepository implements repositories.TranslationRepository.
type TranslationRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

// NewTranslationRepository creates a new TranslationRepository.
func NewTranslationRepository(db *sqlx.DB, log *logrus.Logger) repositories.TranslationRepository {
	return &TranslationRepository{db: db, log: log}
}

// BeginTx opens the import transaction. The connection is opened with
// _txlock=immediate, so the write lock is taken here rather than at the
// first write: two imports of the same locale cannot both classify against
// a stale current row and then issue conflicting activations.
func (r *TranslationRepository) BeginTx(ctx context.Context) (repositories.TranslationTx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &translationTx{tx: tx}, nil
}

type translationTx struct {
	tx *sqlx.Tx
}

func (t *translationTx) SearchByHash(ctx context.Context, hash, localeID string) ([]models.TranslationRow, error) {
	query := `
		SELECT
			translatables.id AS translatable_id,
			translations.id AS id,
			translations.current AS current,
			translations.current_since AS current_since,
			translations.reviewed AS reviewed,
			translations.need_review AS need_review,
			translations.text0 AS text0,
			translations.text1 AS text1,
			translations.text2 AS text2,
			translations.text3 AS text3,
			translations.text4 AS text4,
			translations.text5 AS text5
		FROM translatables
		LEFT JOIN translations
			ON translatables.id = translations.translatable_id
			AND translations.locale_id = ?
		WHERE translatables.hash = ?
	`

	var rows []models.TranslationRow
	if err := t.tx.SelectContext(ctx, &rows, query, localeID, hash); err != nil {
		return nil, fmt.Errorf("failed to search translations: %w", err)
	}
	return rows, nil
}

func (t *translationTx) InsertBatch(ctx context.Context, localeID string, userID int64, rows []models.NewTranslation) error {
	if len(rows) == 0 {
		return nil
	}

	chunk := "(CURRENT_TIMESTAMP, ?, ?, ?, CASE WHEN ? THEN CURRENT_TIMESTAMP END, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	query := `
		INSERT INTO translations
			(created_on, created_by, locale_id, current, current_since,
			 reviewed, need_review, translatable_id,
			 text0, text1, text2, text3, text4, text5)
		VALUES ` + strings.TrimSuffix(strings.Repeat(chunk+",", len(rows)), ",")

	args := make([]interface{}, 0, len(rows)*insertArity)
	for _, row := range rows {
		var current interface{}
		if row.Current {
			current = true
		}
		args = append(args,
			userID, localeID, current, row.Current,
			row.Reviewed, row.NeedReview, row.TranslatableID,
			row.Texts[0], row.Texts[1], row.Texts[2], row.Texts[3], row.Texts[4], row.Texts[5],
		)
	}

	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert translation batch: %w", err)
	}
	return nil
}

func (t *translationTx) SetCurrent(ctx context.Context, translationID int64, reviewed bool) error {
	query := `
		UPDATE translations
		SET current = TRUE, current_since = CURRENT_TIMESTAMP, reviewed = ?, need_review = FALSE
		WHERE id = ?
	`
	if _, err := t.tx.ExecContext(ctx, query, reviewed, translationID); err != nil {
		return fmt.Errorf("failed to activate translation %d: %w", translationID, err)
	}
	return nil
}

func (t *translationTx) UnsetCurrent(ctx context.Context, translationID int64) error {
	query := `
		UPDATE translations
		SET current = NULL, current_since = NULL, reviewed = FALSE, need_review = FALSE
		WHERE id = ?
	`
	if _, err := t.tx.ExecContext(ctx, query, translationID); err != nil {
		return fmt.Errorf("failed to deactivate translation %d: %w", translationID, err)
	}
	return nil
}

func (t *translationTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}
	return nil
}

func (t *translationTx) Rollback() error {
	return t.tx.Rollback()
}

// GetCurrentForLocale returns every active translation for a locale together
// with its translatable, ordered by the source text.
func (r *TranslationRepository) GetCurrentForLocale(ctx context.Context, localeID string) ([]*models.Translation, []*models.Translatable, error) {
	query := `
		SELECT
			translations.id, translations.translatable_id, translations.locale_id,
			translations.current, translations.current_since,
			translations.reviewed, translations.need_review,
			translations.created_on, translations.created_by,
			translations.text0, translations.text1, translations.text2,
			translations.text3, translations.text4, translations.text5,
			translatables.id AS "translatable.id",
			translatables.hash AS "translatable.hash",
			translatables.text AS "translatable.text",
			translatables.plural AS "translatable.plural",
			translatables.context AS "translatable.context"
		FROM translations
		JOIN translatables ON translatables.id = translations.translatable_id
		WHERE translations.locale_id = ? AND translations.current = TRUE
		ORDER BY translatables.text
	`

	rows, err := r.db.QueryxContext(ctx, query, localeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load current translations: %w", err)
	}
	defer rows.Close()

	var translations []*models.Translation
	var translatables []*models.Translatable
	for rows.Next() {
		var joined struct {
			models.Translation
			Translatable models.Translatable `db:"translatable"`
		}
		if err := rows.StructScan(&joined); err != nil {
			return nil, nil, fmt.Errorf("failed to scan current translation: %w", err)
		}
		tr := joined.Translation
		tl := joined.Translatable
		translations = append(translations, &tr)
		translatables = append(translatables, &tl)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read current translations: %w", err)
	}
	return translations, translatables, nil
}

// CountForPair returns the total and active row counts for one
// translatable/locale pair.
func (r *TranslationRepository) CountForPair(ctx context.Context, translatableID int64, localeID string) (int, int, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN current THEN 1 ELSE 0 END), 0)
		FROM translations
		WHERE translatable_id = ? AND locale_id = ?
	`
	var total, current int
	err := r.db.QueryRowContext(ctx, query, translatableID, localeID).Scan(&total, &current)
	if err != nil && err != sql.ErrNoRows {
		return 0, 0, fmt.Errorf("failed to count translations: %w", err)
	}
	return total, current, nil
}
