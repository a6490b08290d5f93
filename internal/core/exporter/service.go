// Package exporter builds downloadable translation bundles from the
// currently active translations of a locale.
package exporter

import (
	"context"
	"fmt"
	"io"

	"github.com/commtrans/ct-backend-go/internal/database/models"
	"github.com/commtrans/ct-backend-go/internal/database/repositories"
	"github.com/commtrans/ct-backend-go/internal/gettext"
	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

// Service builds export bundles.
type Service struct {
	translations repositories.TranslationRepository
	logger       *logrus.Logger
}

// NewService creates a new exporter.
func NewService(translations repositories.TranslationRepository, logger *logrus.Logger) *Service {
	return &Service{translations: translations, logger: logger}
}

// ForLocale builds a PO catalog of every active translation of the locale.
func (s *Service) ForLocale(ctx context.Context, locale *models.Locale) (*gettext.File, error) {
	translations, translatables, err := s.translations.GetCurrentForLocale(ctx, locale.ID)
	if err != nil {
		return nil, err
	}

	file := gettext.NewFile(map[string]string{
		"Project-Id-Version":        "commtrans",
		"Language":                  locale.ID,
		"Plural-Forms":              locale.PluralForms,
		"MIME-Version":              "1.0",
		"Content-Type":              "text/plain; charset=UTF-8",
		"Content-Transfer-Encoding": "8bit",
	})

	for i, tr := range translations {
		src := translatables[i]
		unit := &gettext.Unit{
			ID:          src.Text,
			Translation: tr.Text0,
		}
		if src.Context.Valid {
			unit.Context = src.Context.String
		}
		if src.Plural.Valid {
			unit.IDPlural = src.Plural.String
			texts := tr.Texts()
			unit.PluralTranslations = make([]string, 0, locale.PluralCount-1)
			for p := 1; p < locale.PluralCount; p++ {
				unit.PluralTranslations = append(unit.PluralTranslations, texts[p])
			}
		}
		file.Units = append(file.Units, unit)
	}

	s.logger.WithFields(logrus.Fields{
		"locale": locale.ID,
		"units":  len(file.Units),
	}).Debug("Export bundle built")

	return file, nil
}

// WritePo serializes the catalog as plain PO text.
func (s *Service) WritePo(file *gettext.File, w io.Writer) error {
	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write PO catalog: %w", err)
	}
	return nil
}

// WritePoGz serializes the catalog as gzipped PO text.
func (s *Service) WritePoGz(file *gettext.File, w io.Writer) error {
	gz := gzip.NewWriter(w)
	if err := file.Write(gz); err != nil {
		gz.Close()
		return fmt.Errorf("failed to write PO catalog: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}
