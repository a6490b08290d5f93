package database

import (
	"github.com/commtrans/ct-backend-go/internal/database/repositories"
	"github.com/commtrans/ct-backend-go/internal/database/sqlite"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Repositories holds all repository instances
type Repositories struct {
	Locale       repositories.LocaleRepository
	Translatable repositories.TranslatableRepository
	Translation  repositories.TranslationRepository
	Stats        repositories.StatsRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *sqlx.DB, log *logrus.Logger) *Repositories {
	return &Repositories{
		Locale:       sqlite.NewLocaleRepository(db),
		Translatable: sqlite.NewTranslatableRepository(db),
		Translation:  sqlite.NewTranslationRepository(db, log),
		Stats:        sqlite.NewStatsRepository(db),
	}
}
