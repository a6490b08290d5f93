package importer

import "fmt"

// ErrorKind identifies a validation failure detected before any row is
// written. Storage errors are not ValidationErrors; they pass through
// wrapped so callers can tell the two apart.
type ErrorKind int

const (
	// UnknownLocale: the locale identifier does not resolve.
	UnknownLocale ErrorKind = iota
	// SourceLocaleNotAllowed: translations cannot target the source locale.
	SourceLocaleNotAllowed
	// LocaleNotApproved: the locale exists but is not approved yet.
	LocaleNotApproved
	// AccessDenied: the acting user may not translate this locale.
	AccessDenied
	// LanguageMismatch: the catalog declares a different language.
	LanguageMismatch
	// LanguageUndetermined: the catalog does not declare its language.
	LanguageUndetermined
	// PluralFormMismatch: the catalog's plural arity differs from the locale's.
	PluralFormMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownLocale:
		return "unknown_locale"
	case SourceLocaleNotAllowed:
		return "source_locale_not_allowed"
	case LocaleNotApproved:
		return "locale_not_approved"
	case AccessDenied:
		return "access_denied"
	case LanguageMismatch:
		return "language_mismatch"
	case LanguageUndetermined:
		return "language_undetermined"
	case PluralFormMismatch:
		return "plural_form_mismatch"
	default:
		return "unknown"
	}
}

// ValidationError is a precondition failure; the import performed zero
// writes when one is returned.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func errUnknownLocale(id string) *ValidationError {
	return &ValidationError{UnknownLocale, fmt.Sprintf("invalid locale identifier: %s", id)}
}

func errSourceLocale(name string) *ValidationError {
	return &ValidationError{SourceLocaleNotAllowed, fmt.Sprintf("the locale '%s' is the source one", name)}
}

func errNotApproved(name string) *ValidationError {
	return &ValidationError{LocaleNotApproved, fmt.Sprintf("the locale '%s' is not approved", name)}
}

func errAccessDenied(name string) *ValidationError {
	return &ValidationError{AccessDenied, fmt.Sprintf("no access for the locale '%s'", name)}
}

func errLanguageMismatch(declared, name string) *ValidationError {
	return &ValidationError{LanguageMismatch,
		fmt.Sprintf("the file contains translations for %s and not for %s", declared, name)}
}

func errLanguageUndetermined() *ValidationError {
	return &ValidationError{LanguageUndetermined,
		"it was not possible to determine the language of the uploaded file"}
}

func errPluralUndeclared(name string, want int) *ValidationError {
	return &ValidationError{PluralFormMismatch,
		fmt.Sprintf("for the language %s there should be %d plural forms, but the file does not declare them", name, want)}
}

func errPluralMismatch(name string, want, got int) *ValidationError {
	return &ValidationError{PluralFormMismatch,
		fmt.Sprintf("for the language %s there should be %d plural forms, but the file declares %d", name, want, got)}
}
