package sqlite

import (
	"io"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := `
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
		CREATE TABLE translatables (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hash TEXT NOT NULL UNIQUE,
			text TEXT NOT NULL,
			plural TEXT,
			context TEXT
		);
		CREATE TABLE translations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_on DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_by INTEGER NOT NULL DEFAULT 0,
			locale_id TEXT NOT NULL,
			current BOOLEAN,
			current_since DATETIME,
			reviewed BOOLEAN NOT NULL DEFAULT FALSE,
			need_review BOOLEAN NOT NULL DEFAULT FALSE,
			translatable_id INTEGER NOT NULL,
			text0 TEXT NOT NULL DEFAULT '',
			text1 TEXT NOT NULL DEFAULT '',
			text2 TEXT NOT NULL DEFAULT '',
			text3 TEXT NOT NULL DEFAULT '',
			text4 TEXT NOT NULL DEFAULT '',
			text5 TEXT NOT NULL DEFAULT ''
		);
		CREATE UNIQUE INDEX idx_translations_single_current
			ON translations(translatable_id, locale_id, current);
		CREATE TABLE translated_packages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			handle TEXT NOT NULL,
			version TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (handle, version)
		);
		CREATE TABLE package_translatables (
			package_id INTEGER NOT NULL,
			translatable_id INTEGER NOT NULL,
			PRIMARY KEY (package_id, translatable_id)
		);
		CREATE TABLE locale_stats (
			locale_id TEXT PRIMARY KEY,
			total INTEGER NOT NULL DEFAULT 0,
			translated INTEGER NOT NULL DEFAULT 0,
			last_updated DATETIME
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
