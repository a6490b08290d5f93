package importer

// Result counts how every unit of one import was classified. The sum of
// all counters equals the number of units processed.
type Result struct {
	// EmptyTranslations: units skipped because they carry no translation.
	EmptyTranslations int `json:"empty_translations"`
	// UnknownStrings: units whose source string is not in the system.
	UnknownStrings int `json:"unknown_strings"`
	// AddedActivated: new rows inserted and activated, or existing
	// inactive rows activated where no active row existed.
	AddedActivated int `json:"added_activated"`
	// AddedNeedReview: new rows queued behind a reviewed active one.
	AddedNeedReview int `json:"added_need_review"`
	// ExistingActiveReviewed: active rows upgraded to reviewed.
	ExistingActiveReviewed int `json:"existing_active_reviewed"`
	// ExistingActiveUntouched: units already active with no upgrade.
	ExistingActiveUntouched int `json:"existing_active_untouched"`
	// ExistingActivated: existing inactive rows that displaced the
	// previously active one.
	ExistingActivated int `json:"existing_activated"`
	// ExistingInactiveUntouched: existing inactive rows left queued
	// behind a reviewed active one.
	ExistingInactiveUntouched int `json:"existing_inactive_untouched"`
}

// Total returns the number of processed units.
func (r *Result) Total() int {
	return r.EmptyTranslations + r.UnknownStrings +
		r.AddedActivated + r.AddedNeedReview +
		r.ExistingActiveReviewed + r.ExistingActiveUntouched +
		r.ExistingActivated + r.ExistingInactiveUntouched
}
