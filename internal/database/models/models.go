package models

import (
	"database/sql"
	"time"
)

// MaxPluralForms is the number of text slots a translation row carries.
// Slot 0 holds the singular text, slots 1..5 hold the plural forms.
const MaxPluralForms = 6

// Locale represents a target language of the translation community.
type Locale struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	PluralCount int    `json:"plural_count" db:"plural_count"`
	PluralForms string `json:"plural_forms" db:"plural_forms"`
	IsSource    bool   `json:"is_source" db:"is_source"`
	IsApproved  bool   `json:"is_approved" db:"is_approved"`
}

// Translatable represents a canonical source string, language independent.
// Hash is the md5 of the singular text, or of singular+"\x05"+plural for
// strings that have a plural form.
type Translatable struct {
	ID      int64          `json:"id" db:"id"`
	Hash    string         `json:"hash" db:"hash"`
	Text    string         `json:"text" db:"text"`
	Plural  sql.NullString `json:"plural" db:"plural"`
	Context sql.NullString `json:"context" db:"context"`
}

// Translation is one candidate rendering of a Translatable into a Locale.
// At most one row per (translatable, locale) pair has Current set.
type Translation struct {
	ID             int64        `json:"id" db:"id"`
	TranslatableID int64        `json:"translatable_id" db:"translatable_id"`
	LocaleID       string       `json:"locale_id" db:"locale_id"`
	Current        bool         `json:"current" db:"current"`
	CurrentSince   sql.NullTime `json:"current_since" db:"current_since"`
	Reviewed       bool         `json:"reviewed" db:"reviewed"`
	NeedReview     bool         `json:"need_review" db:"need_review"`
	CreatedOn      time.Time    `json:"created_on" db:"created_on"`
	CreatedBy      int64        `json:"created_by" db:"created_by"`
	Text0          string       `json:"text0" db:"text0"`
	Text1          string       `json:"text1" db:"text1"`
	Text2          string       `json:"text2" db:"text2"`
	Text3          string       `json:"text3" db:"text3"`
	Text4          string       `json:"text4" db:"text4"`
	Text5          string       `json:"text5" db:"text5"`
}

// Texts returns the text slots as a fixed-size array.
func (t *Translation) Texts() [MaxPluralForms]string {
	return [MaxPluralForms]string{t.Text0, t.Text1, t.Text2, t.Text3, t.Text4, t.Text5}
}

// TranslationRow is one row of the reconciliation search query: the matched
// translatable joined against any existing translation for the target locale.
// The translation columns are null when the translatable has no rows yet.
type TranslationRow struct {
	TranslatableID int64          `db:"translatable_id"`
	ID             sql.NullInt64  `db:"id"`
	Current        sql.NullBool   `db:"current"`
	CurrentSince   sql.NullTime   `db:"current_since"`
	Reviewed       sql.NullBool   `db:"reviewed"`
	NeedReview     sql.NullBool   `db:"need_review"`
	Text0          sql.NullString `db:"text0"`
	Text1          sql.NullString `db:"text1"`
	Text2          sql.NullString `db:"text2"`
	Text3          sql.NullString `db:"text3"`
	Text4          sql.NullString `db:"text4"`
	Text5          sql.NullString `db:"text5"`
}

// HasTranslation reports whether the row carries translation columns.
func (r *TranslationRow) HasTranslation() bool {
	return r.ID.Valid
}

// IsCurrent reports whether the row is the active translation.
func (r *TranslationRow) IsCurrent() bool {
	return r.Current.Valid && r.Current.Bool
}

// IsReviewed reports whether the row passed review.
func (r *TranslationRow) IsReviewed() bool {
	return r.Reviewed.Valid && r.Reviewed.Bool
}

// Text returns the text slot at index 0..5, empty when null.
func (r *TranslationRow) Text(slot int) string {
	for i, s := range []sql.NullString{r.Text0, r.Text1, r.Text2, r.Text3, r.Text4, r.Text5} {
		if i == slot {
			if s.Valid {
				return s.String
			}
			return ""
		}
	}
	return ""
}

// NewTranslation is a pending insert produced by the reconciliation engine,
// buffered and flushed in batches.
type NewTranslation struct {
	TranslatableID int64
	Current        bool
	Reviewed       bool
	NeedReview     bool
	Texts          [MaxPluralForms]string
}

// LocaleStats is the per-locale aggregate kept by the stats service.
type LocaleStats struct {
	LocaleID    string       `json:"locale_id" db:"locale_id"`
	Total       int64        `json:"total" db:"total"`
	Translated  int64        `json:"translated" db:"translated"`
	LastUpdated sql.NullTime `json:"last_updated" db:"last_updated"`
}

// Percentage returns the translated ratio in whole percent points.
func (s *LocaleStats) Percentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(s.Translated * 100 / s.Total)
}

// TranslatedPackage associates an imported source package version with the
// translatables it contains.
type TranslatedPackage struct {
	ID        int64     `json:"id" db:"id"`
	Handle    string    `json:"handle" db:"handle"`
	Version   string    `json:"version" db:"version"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AccessLevel is a user's capability on one locale.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessTranslate
	AccessReview
	AccessAdmin
)

func (l AccessLevel) String() string {
	switch l {
	case AccessTranslate:
		return "translate"
	case AccessReview:
		return "review"
	case AccessAdmin:
		return "admin"
	default:
		return "none"
	}
}
