package repositories

import (
	"context"

	"github.com/commtrans/ct-backend-go/internal/database/models"
)

// LocaleRepository manages the locale catalog rows.
type LocaleRepository interface {
	GetByID(ctx context.Context, id string) (*models.Locale, error)
	GetApproved(ctx context.Context) ([]*models.Locale, error)
	Upsert(ctx context.Context, locale *models.Locale) error
	GetAccessLevel(ctx context.Context, userID int64, localeID string) (models.AccessLevel, error)
	SetAccessLevel(ctx context.Context, userID int64, localeID string, level models.AccessLevel) error
}

// TranslatableRepository manages canonical source strings.
type TranslatableRepository interface {
	GetByHash(ctx context.Context, hash string) (*models.Translatable, error)
	Upsert(ctx context.Context, t *models.Translatable) (created bool, err error)
	AssignToPackage(ctx context.Context, handle, version string, translatableIDs []int64) error
	GetPackageHandles(ctx context.Context) ([]string, error)
	GetPackageVersions(ctx context.Context, handle string) ([]string, error)
}

// TranslationTx is the transaction-scoped write surface of the
// reconciliation engine: one search query, batched inserts and single-row
// current-flag updates, all inside the same database transaction.
type TranslationTx interface {
	// SearchByHash returns the translatable matched by hash joined with
	// every existing translation row for the given locale, in row order.
	SearchByHash(ctx context.Context, hash, localeID string) ([]models.TranslationRow, error)
	// InsertBatch writes the buffered new rows with a single multi-row
	// statement. CreatedOn and CurrentSince use the server-side timestamp.
	InsertBatch(ctx context.Context, localeID string, userID int64, rows []models.NewTranslation) error
	// SetCurrent activates a row and clears its need-review flag.
	SetCurrent(ctx context.Context, translationID int64, reviewed bool) error
	// UnsetCurrent deactivates a row and clears both review flags.
	UnsetCurrent(ctx context.Context, translationID int64) error
	Commit() error
	Rollback() error
}

// TranslationRepository manages translation rows.
type TranslationRepository interface {
	// BeginTx opens the import transaction. The write lock is taken up
	// front so two imports of the same locale cannot interleave their
	// read/classify/write cycles.
	BeginTx(ctx context.Context) (TranslationTx, error)
	GetCurrentForLocale(ctx context.Context, localeID string) ([]*models.Translation, []*models.Translatable, error)
	CountForPair(ctx context.Context, translatableID int64, localeID string) (total, current int, err error)
}

// StatsRepository manages per-locale aggregates.
type StatsRepository interface {
	Get(ctx context.Context, localeID string) (*models.LocaleStats, error)
	GetAll(ctx context.Context) ([]*models.LocaleStats, error)
	Invalidate(ctx context.Context, localeID string) error
	Recount(ctx context.Context, localeID string) (*models.LocaleStats, error)
}
