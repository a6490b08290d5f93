// Package importer implements the translation reconciliation engine: it
// merges an uploaded translation catalog for one locale into the store,
// deciding per unit whether to insert, activate, queue for review or leave
// things alone, inside a single transaction with batched writes.
package importer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/commtrans/ct-backend-go/internal/core/catalog"
	"github.com/commtrans/ct-backend-go/internal/core/metrics"
	"github.com/commtrans/ct-backend-go/internal/database/models"
	"github.com/commtrans/ct-backend-go/internal/database/repositories"
	"github.com/commtrans/ct-backend-go/internal/gettext"
	"github.com/sirupsen/logrus"
)

// DefaultBatchSize is how many buffered inserts are flushed per statement.
const DefaultBatchSize = 50

// keySeparator joins the singular and plural keys when hashing strings
// that have a plural form.
const keySeparator = "\x05"

// StatsInvalidator is notified after a successful commit with the
// translatables whose active translation changed.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, localeID string, translatableIDs []int64) error
}

// ChangeNotifier pushes translation-changed events to connected clients.
type ChangeNotifier interface {
	TranslationsChanged(localeID string, translatableIDs []int64)
}

// Options tune a single import call.
type Options struct {
	// UserID is the acting user; recorded on every inserted row and used
	// to derive review rights when MaySetAsReviewed is nil.
	UserID int64
	// MaySetAsReviewed overrides the access-level derivation when set.
	MaySetAsReviewed *bool
	// CheckLocale verifies the catalog's declared language.
	CheckLocale bool
	// CheckPlural verifies the catalog's declared plural arity.
	CheckPlural bool
}

// Importer is the reconciliation engine.
type Importer struct {
	translations repositories.TranslationRepository
	catalog      *catalog.Service
	stats        StatsInvalidator
	notifier     ChangeNotifier
	metrics      *metrics.Collector
	logger       *logrus.Logger
	batchSize    int
}

// NewImporter creates a reconciliation engine. stats and notifier may be
// nil; both are strictly post-commit, best-effort sinks.
func NewImporter(
	translations repositories.TranslationRepository,
	cat *catalog.Service,
	stats StatsInvalidator,
	notifier ChangeNotifier,
	collector *metrics.Collector,
	logger *logrus.Logger,
	batchSize int,
) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		translations: translations,
		catalog:      cat,
		stats:        stats,
		notifier:     notifier,
		metrics:      collector,
		logger:       logger,
		batchSize:    batchSize,
	}
}

// Hash computes the lookup key of a source string: the md5 of the singular
// key, or of singular+separator+plural for strings with a plural form.
func Hash(singular, plural string) string {
	key := singular
	if plural != "" {
		key = singular + keySeparator + plural
	}
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Import merges the translation catalog into the store for one locale.
// All validation happens before any row is touched; a *ValidationError
// means zero writes were performed. Any storage error rolls the whole
// transaction back and is returned unchanged.
func (e *Importer) Import(ctx context.Context, set *gettext.File, localeID string, opts Options) (*Result, error) {
	locale, err := e.catalog.Resolve(ctx, localeID)
	if err != nil {
		return nil, err
	}
	if locale == nil {
		return nil, errUnknownLocale(localeID)
	}
	if locale.IsSource {
		return nil, errSourceLocale(locale.Name)
	}
	if !locale.IsApproved {
		return nil, errNotApproved(locale.Name)
	}

	var maySetAsReviewed bool
	if opts.MaySetAsReviewed != nil {
		maySetAsReviewed = *opts.MaySetAsReviewed
	} else {
		access, err := e.catalog.AccessLevel(ctx, opts.UserID, locale.ID)
		if err != nil {
			return nil, err
		}
		if access < models.AccessTranslate {
			return nil, errAccessDenied(locale.Name)
		}
		maySetAsReviewed = access >= models.AccessReview
	}

	if opts.CheckLocale {
		declared := set.Language()
		if declared == "" {
			return nil, errLanguageUndetermined()
		}
		if !catalog.SameID(declared, locale.ID) {
			return nil, errLanguageMismatch(declared, locale.Name)
		}
	}

	if opts.CheckPlural {
		declared, ok := set.PluralCount()
		if !ok || declared != locale.PluralCount {
			for _, unit := range set.Units {
				if !unit.HasPlural() || !unit.HasPluralTranslation() {
					continue
				}
				if !ok {
					return nil, errPluralUndeclared(locale.Name, locale.PluralCount)
				}
				return nil, errPluralMismatch(locale.Name, locale.PluralCount, declared)
			}
		}
	}

	started := time.Now()
	result, changed, err := e.reconcile(ctx, set, locale, opts.UserID, maySetAsReviewed)
	if err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.RecordImportDuration(time.Since(started))
		e.recordOutcomes(result)
	}

	// Post-commit, best-effort: a failing sink must not fail the import.
	if len(changed) > 0 {
		if e.stats != nil {
			if err := e.stats.Invalidate(ctx, locale.ID, changed); err != nil {
				e.logger.WithError(err).WithField("locale", locale.ID).
					Warn("Failed to invalidate stats after import")
			}
		}
		if e.notifier != nil {
			e.notifier.TranslationsChanged(locale.ID, changed)
		}
	}

	e.logger.WithFields(logrus.Fields{
		"locale":  locale.ID,
		"user":    opts.UserID,
		"units":   result.Total(),
		"changed": len(changed),
	}).Info("Translation import completed")

	return result, nil
}

// reconcile runs the per-unit classification loop inside one transaction.
// It returns the result counters and the ids of every translatable whose
// active translation changed (duplicates allowed).
func (e *Importer) reconcile(ctx context.Context, set *gettext.File, locale *models.Locale, userID int64, maySetAsReviewed bool) (*Result, []int64, error) {
	tx, err := e.translations.BeginTx(ctx)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		// Best-effort: a failing rollback never masks the root cause.
		if rbErr := tx.Rollback(); rbErr != nil {
			e.logger.WithError(rbErr).Warn("Rollback failed after import error")
		}
	}()

	result := &Result{}
	var changed []int64
	batch := make([]models.NewTranslation, 0, e.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := tx.InsertBatch(ctx, locale.ID, userID, batch); err != nil {
			return err
		}
		if e.metrics != nil {
			e.metrics.RecordBatchFlush()
		}
		batch = batch[:0]
		return nil
	}

	for _, unit := range set.Units {
		if !unit.HasTranslation() {
			result.EmptyTranslations++
			continue
		}
		isPlural := unit.HasPlural()
		if isPlural && locale.PluralCount > 1 && !unit.HasPluralTranslation() {
			result.EmptyTranslations++
			continue
		}

		var hash string
		if isPlural {
			hash = Hash(unit.ID, unit.IDPlural)
		} else {
			hash = Hash(unit.ID, "")
		}

		rows, err := tx.SearchByHash(ctx, hash, locale.ID)
		if err != nil {
			return nil, nil, err
		}

		// One pass over the row snapshots: the translatable id comes from
		// any row, currentRow is the single active one, sameRow the first
		// whose texts equal the incoming unit.
		var translatableID int64
		var currentRow, sameRow *models.TranslationRow
		for i := range rows {
			row := &rows[i]
			if translatableID == 0 {
				translatableID = row.TranslatableID
			}
			if !row.HasTranslation() {
				break
			}
			if currentRow == nil && row.IsCurrent() {
				currentRow = row
			}
			if sameRow == nil && rowMatchesUnit(row, unit, isPlural, locale.PluralCount) {
				sameRow = row
			}
		}
		if translatableID == 0 {
			result.UnknownStrings++
			continue
		}

		reviewed := maySetAsReviewed && !unit.IsFuzzy()

		switch {
		case sameRow == nil:
			// Unseen content: always inserted, the only question is
			// whether it becomes the active translation.
			insert := models.NewTranslation{TranslatableID: translatableID}
			insert.Texts[0] = unit.Translation
			if isPlural {
				for p := 1; p < locale.PluralCount; p++ {
					insert.Texts[p] = unit.PluralTranslation(p - 1)
				}
			}
			switch {
			case currentRow == nil:
				insert.Current = true
				insert.Reviewed = reviewed
				changed = append(changed, translatableID)
				result.AddedActivated++
			case reviewed || !currentRow.IsReviewed():
				if err := tx.UnsetCurrent(ctx, currentRow.ID.Int64); err != nil {
					return nil, nil, err
				}
				insert.Current = true
				insert.Reviewed = reviewed
				changed = append(changed, translatableID)
				result.AddedActivated++
			default:
				// A reviewed translation stays active; queue the new
				// unreviewed one for review instead.
				insert.NeedReview = true
				result.AddedNeedReview++
			}
			batch = append(batch, insert)
			if len(batch) == e.batchSize {
				if err := flush(); err != nil {
					return nil, nil, err
				}
			}

		case currentRow == nil:
			// Known content, nothing active: activate it.
			if err := tx.SetCurrent(ctx, sameRow.ID.Int64, reviewed || sameRow.IsReviewed()); err != nil {
				return nil, nil, err
			}
			changed = append(changed, translatableID)
			result.AddedActivated++

		case sameRow.ID.Int64 == currentRow.ID.Int64:
			// Already the active translation; at most upgrade to reviewed.
			if reviewed && !sameRow.IsReviewed() {
				if err := tx.SetCurrent(ctx, sameRow.ID.Int64, true); err != nil {
					return nil, nil, err
				}
				result.ExistingActiveReviewed++
			} else {
				result.ExistingActiveUntouched++
			}

		default:
			// Known content competing with a different active row.
			if reviewed || !currentRow.IsReviewed() {
				if err := tx.UnsetCurrent(ctx, currentRow.ID.Int64); err != nil {
					return nil, nil, err
				}
				if err := tx.SetCurrent(ctx, sameRow.ID.Int64, reviewed); err != nil {
					return nil, nil, err
				}
				changed = append(changed, translatableID)
				result.ExistingActivated++
			} else {
				result.ExistingInactiveUntouched++
			}
		}
	}

	if err := flush(); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true

	return result, changed, nil
}

// rowMatchesUnit reports whether an existing row carries exactly the same
// texts as the incoming unit, comparing every slot within the locale's
// plural arity.
func rowMatchesUnit(row *models.TranslationRow, unit *gettext.Unit, isPlural bool, pluralCount int) bool {
	if row.Text(0) != unit.Translation {
		return false
	}
	if !isPlural {
		return true
	}
	for p := 1; p < pluralCount; p++ {
		if row.Text(p) != unit.PluralTranslation(p-1) {
			return false
		}
	}
	return true
}

func (e *Importer) recordOutcomes(r *Result) {
	e.metrics.RecordImportOutcome("empty_translations", r.EmptyTranslations)
	e.metrics.RecordImportOutcome("unknown_strings", r.UnknownStrings)
	e.metrics.RecordImportOutcome("added_activated", r.AddedActivated)
	e.metrics.RecordImportOutcome("added_need_review", r.AddedNeedReview)
	e.metrics.RecordImportOutcome("existing_active_reviewed", r.ExistingActiveReviewed)
	e.metrics.RecordImportOutcome("existing_active_untouched", r.ExistingActiveUntouched)
	e.metrics.RecordImportOutcome("existing_activated", r.ExistingActivated)
	e.metrics.RecordImportOutcome("existing_inactive_untouched", r.ExistingInactiveUntouched)
}
