package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/commtrans/ct-backend-go/internal/database/models"
	"github.com/commtrans/ct-backend-go/internal/database/repositories"
	"github.com/jmoiron/sqlx"
)

// TranslatableRepository implements repositories.TranslatableRepository.
type TranslatableRepository struct {
	db *sqlx.DB
}

// NewTranslatableRepository creates a new TranslatableRepository.
func NewTranslatableRepository(db *sqlx.DB) repositories.TranslatableRepository {
	return &TranslatableRepository{db: db}
}

// GetByHash retrieves a source string by its content hash. Returns nil when
// the string is unknown.
func (r *TranslatableRepository) GetByHash(ctx context.Context, hash string) (*models.Translatable, error) {
	query := `SELECT id, hash, text, plural, context FROM translatables WHERE hash = ?`

	t := &models.Translatable{}
	err := r.db.GetContext(ctx, t, query, hash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get translatable: %w", err)
	}
	return t, nil
}

// Upsert inserts a source string if its hash is new, otherwise loads the
// existing row id. Reports whether a row was created.
func (r *TranslatableRepository) Upsert(ctx context.Context, t *models.Translatable) (bool, error) {
	existing, err := r.GetByHash(ctx, t.Hash)
	if err != nil {
		return false, err
	}
	if existing != nil {
		t.ID = existing.ID
		return false, nil
	}

	query := `INSERT INTO translatables (hash, text, plural, context) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, t.Hash, t.Text, t.Plural, t.Context)
	if err != nil {
		return false, fmt.Errorf("failed to insert translatable: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("failed to get inserted translatable ID: %w", err)
	}
	t.ID = id
	return true, nil
}

// AssignToPackage records which translatables a package version contains,
// replacing the previous assignment.
func (r *TranslatableRepository) AssignToPackage(ctx context.Context, handle, version string, translatableIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO translated_packages (handle, version, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(handle, version) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
	`, handle, version)
	if err != nil {
		return fmt.Errorf("failed to upsert package: %w", err)
	}

	// LastInsertId is stale when the upsert took the update path, so the id
	// is always resolved by lookup.
	var packageID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM translated_packages WHERE handle = ? AND version = ?`,
		handle, version).Scan(&packageID); err != nil {
		return fmt.Errorf("failed to resolve package id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM package_translatables WHERE package_id = ?`, packageID); err != nil {
		return fmt.Errorf("failed to clear package assignment: %w", err)
	}
	for _, id := range translatableIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO package_translatables (package_id, translatable_id) VALUES (?, ?)`,
			packageID, id); err != nil {
			return fmt.Errorf("failed to assign translatable %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit package assignment: %w", err)
	}
	return nil
}

// GetPackageHandles lists the distinct imported package handles.
func (r *TranslatableRepository) GetPackageHandles(ctx context.Context) ([]string, error) {
	var handles []string
	err := r.db.SelectContext(ctx, &handles,
		`SELECT DISTINCT handle FROM translated_packages ORDER BY handle`)
	if err != nil {
		return nil, fmt.Errorf("failed to list package handles: %w", err)
	}
	return handles, nil
}

// GetPackageVersions lists the known versions of one package handle.
func (r *TranslatableRepository) GetPackageVersions(ctx context.Context, handle string) ([]string, error) {
	var versions []string
	err := r.db.SelectContext(ctx, &versions,
		`SELECT version FROM translated_packages WHERE handle = ? ORDER BY version`, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to list package versions: %w", err)
	}
	return versions, nil
}
