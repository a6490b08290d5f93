// Package translatable imports canonical source strings from package
// templates. It is the counterpart of the translation importer: it is the
// only component that creates translatable rows.
package translatable

import (
	"context"
	"database/sql"

	"github.com/commtrans/ct-backend-go/internal/core/importer"
	"github.com/commtrans/ct-backend-go/internal/database/models"
	"github.com/commtrans/ct-backend-go/internal/database/repositories"
	"github.com/commtrans/ct-backend-go/internal/gettext"
	"github.com/sirupsen/logrus"
)

// Service imports source strings.
type Service struct {
	translatables repositories.TranslatableRepository
	logger        *logrus.Logger
}

// NewService creates a new source-string import service.
func NewService(translatables repositories.TranslatableRepository, logger *logrus.Logger) *Service {
	return &Service{translatables: translatables, logger: logger}
}

// ImportSourceStrings upserts every unit of a template catalog as a
// translatable and assigns the set to the package version. It returns the
// number of strings that were new to the system.
func (s *Service) ImportSourceStrings(ctx context.Context, set *gettext.File, handle, version string) (int, error) {
	added := 0
	ids := make([]int64, 0, len(set.Units))

	for _, unit := range set.Units {
		if unit.ID == "" {
			continue
		}
		t := &models.Translatable{
			Hash: importer.Hash(unit.ID, unit.IDPlural),
			Text: unit.ID,
		}
		if unit.IDPlural != "" {
			t.Plural = sql.NullString{String: unit.IDPlural, Valid: true}
		}
		if unit.Context != "" {
			t.Context = sql.NullString{String: unit.Context, Valid: true}
		}
		created, err := s.translatables.Upsert(ctx, t)
		if err != nil {
			return 0, err
		}
		if created {
			added++
		}
		ids = append(ids, t.ID)
	}

	if err := s.translatables.AssignToPackage(ctx, handle, version, ids); err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"package": handle,
		"version": version,
		"strings": len(ids),
		"added":   added,
	}).Info("Source strings imported")

	return added, nil
}
