// Package catalog resolves locale identifiers to their descriptors and
// answers per-user access levels.
package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/commtrans/ct-backend-go/internal/database/models"
	"github.com/commtrans/ct-backend-go/internal/database/repositories"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Service is the locale catalog.
type Service struct {
	locales repositories.LocaleRepository
	logger  *logrus.Logger
}

// NewService creates a new catalog service.
func NewService(locales repositories.LocaleRepository, logger *logrus.Logger) *Service {
	return &Service{locales: locales, logger: logger}
}

// Resolve returns the descriptor for a locale identifier, nil when unknown.
func (s *Service) Resolve(ctx context.Context, id string) (*models.Locale, error) {
	return s.locales.GetByID(ctx, NormalizeID(id))
}

// Approved lists the approved target locales.
func (s *Service) Approved(ctx context.Context) ([]*models.Locale, error) {
	return s.locales.GetApproved(ctx)
}

// AccessLevel returns the user's capability on a locale.
func (s *Service) AccessLevel(ctx context.Context, userID int64, localeID string) (models.AccessLevel, error) {
	return s.locales.GetAccessLevel(ctx, userID, localeID)
}

// Grant sets the user's capability on a locale.
func (s *Service) Grant(ctx context.Context, userID int64, localeID string, level models.AccessLevel) error {
	return s.locales.SetAccessLevel(ctx, userID, localeID, level)
}

// NormalizeID canonicalizes a locale identifier: dashes become underscores
// and the territory part is uppercased ("it-it" -> "it_IT").
func NormalizeID(id string) string {
	id = strings.ReplaceAll(strings.TrimSpace(id), "-", "_")
	parts := strings.SplitN(id, "_", 2)
	parts[0] = strings.ToLower(parts[0])
	if len(parts) == 2 {
		parts[1] = strings.ToUpper(parts[1])
		return parts[0] + "_" + parts[1]
	}
	return parts[0]
}

// SameID reports whether two locale identifiers are equivalent after
// normalization.
func SameID(a, b string) bool {
	return strings.EqualFold(NormalizeID(a), NormalizeID(b))
}

type seedFile struct {
	Locales []seedLocale `yaml:"locales"`
}

type seedLocale struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	PluralCount int    `yaml:"plural_count"`
	PluralForms string `yaml:"plural_forms"`
	Source      bool   `yaml:"source"`
	Approved    bool   `yaml:"approved"`
}

// Seed loads the locale seed file and upserts every entry. Missing file is
// not an error; the catalog can be managed entirely through the database.
func (s *Service) Seed(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.logger.WithField("path", path).Debug("No locale seed file")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read locale seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse locale seed file: %w", err)
	}

	for _, entry := range seed.Locales {
		if entry.PluralCount < 1 || entry.PluralCount > models.MaxPluralForms {
			return fmt.Errorf("locale %s: plural count %d out of range", entry.ID, entry.PluralCount)
		}
		locale := &models.Locale{
			ID:          NormalizeID(entry.ID),
			Name:        entry.Name,
			PluralCount: entry.PluralCount,
			PluralForms: entry.PluralForms,
			IsSource:    entry.Source,
			IsApproved:  entry.Approved,
		}
		if err := s.locales.Upsert(ctx, locale); err != nil {
			return err
		}
	}

	s.logger.WithField("count", len(seed.Locales)).Info("Locale catalog seeded")
	return nil
}
