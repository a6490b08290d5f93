// Package stats maintains per-locale translation aggregates and serves as
// the invalidation sink for the reconciliation engine.
package stats

import (
	"context"
	"fmt"

	"github.com/commtrans/ct-backend-go/internal/database/models"
	"github.com/commtrans/ct-backend-go/internal/database/repositories"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service computes, caches and invalidates locale aggregates.
type Service struct {
	stats   repositories.StatsRepository
	locales repositories.LocaleRepository
	logger  *logrus.Logger
	cron    *cron.Cron
}

// NewService creates a new stats service.
func NewService(stats repositories.StatsRepository, locales repositories.LocaleRepository, logger *logrus.Logger) *Service {
	return &Service{
		stats:   stats,
		locales: locales,
		logger:  logger,
	}
}

// Invalidate drops the cached aggregate for a locale. The translatable ids
// are currently only logged; the aggregate granularity is per locale.
func (s *Service) Invalidate(ctx context.Context, localeID string, translatableIDs []int64) error {
	if err := s.stats.Invalidate(ctx, localeID); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"locale":        localeID,
		"translatables": len(translatableIDs),
	}).Debug("Locale stats invalidated")
	return nil
}

// Get returns the aggregate for a locale, recounting when the cached row
// was invalidated.
func (s *Service) Get(ctx context.Context, localeID string) (*models.LocaleStats, error) {
	cached, err := s.stats.Get(ctx, localeID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}
	return s.stats.Recount(ctx, localeID)
}

// GetForLocales returns aggregates for the given locales, recounting
// missing ones.
func (s *Service) GetForLocales(ctx context.Context, locales []*models.Locale) ([]*models.LocaleStats, error) {
	result := make([]*models.LocaleStats, 0, len(locales))
	for _, locale := range locales {
		stat, err := s.Get(ctx, locale.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, stat)
	}
	return result, nil
}

// RecountAll recomputes the aggregate of every approved locale.
func (s *Service) RecountAll(ctx context.Context) error {
	locales, err := s.locales.GetApproved(ctx)
	if err != nil {
		return err
	}
	for _, locale := range locales {
		if _, err := s.stats.Recount(ctx, locale.ID); err != nil {
			return fmt.Errorf("failed to recount %s: %w", locale.ID, err)
		}
	}
	s.logger.WithField("locales", len(locales)).Info("Locale stats recounted")
	return nil
}

// StartSchedule runs RecountAll on the given cron expression until Stop.
func (s *Service) StartSchedule(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := s.RecountAll(context.Background()); err != nil {
			s.logger.WithError(err).Error("Scheduled stats recount failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule stats recount: %w", err)
	}
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the refresh schedule.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
