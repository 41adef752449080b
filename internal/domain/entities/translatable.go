package entities

import "slices"

// Descriptor declares how an entity type participates in the overlay: the
// table owning its rows and the fields eligible for translation.
type Descriptor struct {
	Table  string
	Fields []string
}

// Translatable reports whether field is declared as translatable.
func (d Descriptor) Translatable(field string) bool {
	return slices.Contains(d.Fields, field)
}

// Translatable is implemented by entities whose rows can be overlaid.
type Translatable interface {
	// TranslationID is the row id as stored in related_id.
	TranslationID() string
	// Field returns the current value of a translatable field; ok is false
	// when the field is unset.
	Field(name string) (value string, ok bool)
	SetField(name, value string)
	TranslationsEnabled() bool
}

// Overlay holds the per-instance overlay switch. Embed it in entities.
type Overlay struct {
	withoutTranslations bool
}

// WithoutTranslations disables the overlay for this instance until
// WithTranslations is called.
func (o *Overlay) WithoutTranslations() { o.withoutTranslations = true }

func (o *Overlay) WithTranslations() { o.withoutTranslations = false }

func (o *Overlay) TranslationsEnabled() bool { return !o.withoutTranslations }

// Scope carries per-query overlay settings: an explicit locale overriding the
// ambient one, and a switch disabling the overlay for the whole read.
type Scope struct {
	Locale              string
	WithoutTranslations bool
}

// In returns a copy of s pinned to locale.
func (s Scope) In(locale string) Scope {
	s.Locale = locale
	return s
}
