package entities

import (
	"strings"

	"golang.org/x/text/language"
)

// StoreTablePrefix prefixes every per-locale translation table.
const StoreTablePrefix = "translations_"

type Locale struct {
	Code    string
	Enabled bool
}

// NormalizeLocale validates code as a BCP 47 tag and returns the form used in
// table names: lower case, "-" replaced by "_" ("pt-BR" -> "pt_br").
func NormalizeLocale(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	if _, err := language.Parse(strings.ReplaceAll(code, "_", "-")); err != nil {
		return "", false
	}
	return strings.ToLower(strings.ReplaceAll(code, "-", "_")), true
}

// StoreTable is the name of the translation table holding locale's overlay.
func StoreTable(locale string) string {
	return StoreTablePrefix + locale
}

// LocaleFromStoreTable reverses StoreTable. ok is false for tables outside the
// naming convention.
func LocaleFromStoreTable(table string) (locale string, ok bool) {
	if !strings.HasPrefix(table, StoreTablePrefix) {
		return "", false
	}
	locale = strings.TrimPrefix(table, StoreTablePrefix)
	return locale, locale != ""
}
