package catalog

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/commtrans/ct-backend-go/internal/database/models"
	"github.com/commtrans/ct-backend-go/internal/database/sqlite"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupCatalog(t *testing.T) *Service {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE locales (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			plural_count INTEGER NOT NULL DEFAULT 2,
			plural_forms TEXT NOT NULL DEFAULT '',
			is_source BOOLEAN NOT NULL DEFAULT FALSE,
			is_approved BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE TABLE locale_members (
			user_id INTEGER NOT NULL,
			locale_id TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, locale_id)
		);
	`)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(sqlite.NewLocaleRepository(db), log)
}

func TestNormalizeID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"it_IT", "it_IT"},
		{"it-it", "it_IT"},
		{"IT-IT", "it_IT"},
		{" de_de ", "de_DE"},
		{"ja", "ja"},
		{"JA", "ja"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeID(tt.in), "input %q", tt.in)
	}
}

func TestSameID(t *testing.T) {
	assert.True(t, SameID("it-it", "it_IT"))
	assert.True(t, SameID("IT_IT", "it_IT"))
	assert.False(t, SameID("it_IT", "it_CH"))
}

func TestResolve_NormalizesInput(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.locales.Upsert(ctx, &models.Locale{
		ID: "it_IT", Name: "Italian", PluralCount: 2, IsApproved: true,
	}))

	locale, err := svc.Resolve(ctx, "it-it")
	require.NoError(t, err)
	require.NotNil(t, locale)
	assert.Equal(t, "it_IT", locale.ID)

	locale, err = svc.Resolve(ctx, "zz_ZZ")
	require.NoError(t, err)
	assert.Nil(t, locale)
}

func TestSeed(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "locales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
locales:
  - id: it-it
    name: Italian
    plural_count: 2
    plural_forms: "nplurals=2; plural=(n != 1);"
    approved: true
  - id: en_US
    name: English
    plural_count: 2
    source: true
    approved: true
`), 0644))

	require.NoError(t, svc.Seed(ctx, path))

	locale, err := svc.Resolve(ctx, "it_IT")
	require.NoError(t, err)
	require.NotNil(t, locale, "seed must normalize locale ids")
	assert.True(t, locale.IsApproved)

	approved, err := svc.Approved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1, "source locales are not listed as targets")
	assert.Equal(t, "it_IT", approved[0].ID)
}

func TestSeed_MissingFileIsNotAnError(t *testing.T) {
	svc := setupCatalog(t)
	assert.NoError(t, svc.Seed(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestSeed_RejectsBadPluralCount(t *testing.T) {
	svc := setupCatalog(t)
	path := filepath.Join(t.TempDir(), "locales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
locales:
  - id: xx_XX
    name: Broken
    plural_count: 7
`), 0644))
	assert.Error(t, svc.Seed(context.Background(), path))
}

func TestGrantAndAccessLevel(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	level, err := svc.AccessLevel(ctx, 5, "it_IT")
	require.NoError(t, err)
	assert.Equal(t, models.AccessNone, level)

	require.NoError(t, svc.Grant(ctx, 5, "it_IT", models.AccessReview))
	level, err = svc.AccessLevel(ctx, 5, "it_IT")
	require.NoError(t, err)
	assert.Equal(t, models.AccessReview, level)
}
