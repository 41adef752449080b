package domain

import "errors"

// Error carries a stable code next to the underlying error so adapters can
// resolve a localized message without string matching.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func newError(code, msg string) *Error {
	return &Error{Code: code, Err: errors.New(msg)}
}

// Domain errors.
var (
	ErrPostNotFound    = newError("post_not_found", "article non trouvé")
	ErrStoreMissing    = newError("store_missing", "table de traductions absente")
	ErrInvalidLocale   = newError("invalid_locale", "code de langue invalide")
	ErrLocaleExists    = newError("locale_exists", "la langue existe déjà")
	ErrDefaultLocale   = newError("default_locale", "la langue par défaut ne peut pas être traduite")
	ErrInvalidOperator = newError("invalid_operator", "opérateur de comparaison non supporté")
	ErrInvalidField    = newError("invalid_field", "champ inconnu")
)

// Code returns the code of the first domain error found in err's chain, or "".
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
