package application

import (
	"context"
	"fmt"
	"slices"

	"translayer/internal/domain/entities"
	"translayer/internal/ports/input"
	"translayer/internal/ports/output"
)

var _ input.LocaleUseCase = (*LocaleDirectory)(nil)

// LocaleDirectory enumerates enabled locales and resolves the locale in
// effect for an operation.
type LocaleDirectory struct {
	repo           output.LocaleRepository
	holder         output.LocaleHolder
	defaultLocale  string
	fallbackLocale string
}

// NewLocaleDirectory expects normalized locale codes. An empty fallback
// defaults to defaultLocale.
func NewLocaleDirectory(repo output.LocaleRepository, holder output.LocaleHolder, defaultLocale, fallbackLocale string) *LocaleDirectory {
	if fallbackLocale == "" {
		fallbackLocale = defaultLocale
	}
	return &LocaleDirectory{
		repo:           repo,
		holder:         holder,
		defaultLocale:  defaultLocale,
		fallbackLocale: fallbackLocale,
	}
}

func (d *LocaleDirectory) Default() string { return d.defaultLocale }

// Fallback is the locale stored in base tables; it is never overlaid.
func (d *LocaleDirectory) Fallback() string { return d.fallbackLocale }

func (d *LocaleDirectory) ListEnabled(ctx context.Context) ([]string, error) {
	codes, err := d.repo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled locales: %w", err)
	}
	return codes, nil
}

// Ambient returns the session/request locale, or the default.
func (d *LocaleDirectory) Ambient(ctx context.Context) string {
	if code, ok := d.holder.Get(ctx); ok {
		if norm, valid := entities.NormalizeLocale(code); valid {
			return norm
		}
	}
	return d.defaultLocale
}

// ResolveEffective applies override > ambient > default. Invalid overrides
// are ignored.
func (d *LocaleDirectory) ResolveEffective(ctx context.Context, override string) string {
	if norm, ok := entities.NormalizeLocale(override); ok {
		return norm
	}
	return d.Ambient(ctx)
}

// Switch pins candidate as the ambient locale. Unknown or disabled candidates
// silently become the default locale.
func (d *LocaleDirectory) Switch(ctx context.Context, candidate string) (string, error) {
	enabled, err := d.ListEnabled(ctx)
	if err != nil {
		return "", err
	}

	locale := d.defaultLocale
	if norm, ok := entities.NormalizeLocale(candidate); ok {
		if slices.ContainsFunc(enabled, func(code string) bool {
			c, _ := entities.NormalizeLocale(code)
			return c == norm
		}) {
			locale = norm
		}
	}
	d.holder.Set(ctx, locale)
	return locale, nil
}
