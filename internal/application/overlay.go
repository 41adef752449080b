package application

import (
	"context"
	"fmt"
	"log/slog"

	"translayer/internal/domain/entities"
)

// Reloader restores an entity's base-row state after its translated values
// were written to the store.
type Reloader func(ctx context.Context) error

// OverlayEngine substitutes translated values into hydrated rows and keeps
// the translation stores in step with base-row writes and deletes.
type OverlayEngine struct {
	locales *LocaleDirectory
	tables  *TableRegistry
	store   *TranslationStore
	logger  *slog.Logger
}

func NewOverlayEngine(locales *LocaleDirectory, tables *TableRegistry, store *TranslationStore, logger *slog.Logger) *OverlayEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &OverlayEngine{
		locales: locales,
		tables:  tables,
		store:   store,
		logger:  logger,
	}
}

// ShouldOverlay reports whether rows of d read or written under locale go
// through locale's store. It is evaluated on every call: the locale and the
// enabled switch may change between calls on the same instance.
func (e *OverlayEngine) ShouldOverlay(ctx context.Context, d entities.Descriptor, enabled bool, locale string) (bool, error) {
	if !enabled || locale == "" || locale == e.locales.Fallback() || len(d.Fields) == 0 {
		return false, nil
	}
	return e.tables.Exists(ctx, entities.StoreTable(locale))
}

// OverlayLocale returns the effective locale of scope when it overlays d, or
// "" when reads of d use base columns.
func (e *OverlayEngine) OverlayLocale(ctx context.Context, scope entities.Scope, d entities.Descriptor) (string, error) {
	locale := e.locales.ResolveEffective(ctx, scope.Locale)
	ok, err := e.ShouldOverlay(ctx, d, !scope.WithoutTranslations, locale)
	if err != nil || !ok {
		return "", err
	}
	return locale, nil
}

// Hydrate merges translated values into rows in place. Fields without a
// record keep their base value; rows with the overlay disabled are skipped.
func (e *OverlayEngine) Hydrate(ctx context.Context, scope entities.Scope, d entities.Descriptor, rows []entities.Translatable) error {
	if len(rows) == 0 {
		return nil
	}
	locale, err := e.OverlayLocale(ctx, scope, d)
	if err != nil || locale == "" {
		return err
	}

	records, err := e.store.Load(ctx, locale)
	if err != nil {
		return err
	}

	ids := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		ids[row.TranslationID()] = struct{}{}
	}

	byRow := make(map[string]map[string]string)
	for _, t := range records {
		if t.RelatedTable != d.Table || !d.Translatable(t.RelatedField) {
			continue
		}
		if _, ok := ids[t.RelatedID]; !ok {
			continue
		}
		fields := byRow[t.RelatedID]
		if fields == nil {
			fields = make(map[string]string)
			byRow[t.RelatedID] = fields
		}
		fields[t.RelatedField] = t.Text
	}
	if len(byRow) == 0 {
		return nil
	}

	for _, row := range rows {
		if !row.TranslationsEnabled() {
			continue
		}
		for field, text := range byRow[row.TranslationID()] {
			row.SetField(field, text)
		}
	}
	return nil
}

// Persist writes the translatable fields of ent into the ambient locale's
// store, then runs reload. Once routed, that store's cache is invalidated on
// every exit, failures included. It reports whether the fields were routed to
// the store; when false the base row is the canonical holder of the values.
func (e *OverlayEngine) Persist(ctx context.Context, d entities.Descriptor, ent entities.Translatable, reload Reloader) (bool, error) {
	locale := e.locales.Ambient(ctx)
	ok, err := e.ShouldOverlay(ctx, d, ent.TranslationsEnabled(), locale)
	if err != nil || !ok {
		return false, err
	}

	// Upserts may have landed even when a later step fails.
	defer e.store.Invalidate(locale)

	rowID := ent.TranslationID()
	for _, field := range d.Fields {
		value, set := ent.Field(field)
		if !set {
			continue
		}
		if err := e.store.Upsert(ctx, locale, d.Table, field, rowID, value); err != nil {
			return true, err
		}
	}

	if reload != nil {
		if err := reload(ctx); err != nil {
			return true, fmt.Errorf("reload %s#%s: %w", d.Table, rowID, err)
		}
	}
	return true, nil
}

// Forget removes the records of (d.Table, rowID) from every translation
// store known to the registry. A failing store is logged and skipped.
func (e *OverlayEngine) Forget(ctx context.Context, d entities.Descriptor, rowID string) error {
	tables, err := e.tables.List(ctx)
	if err != nil {
		return err
	}

	for _, table := range tables {
		locale, ok := entities.LocaleFromStoreTable(table)
		if !ok {
			continue
		}
		outcome, err := e.store.DeleteForRow(ctx, locale, d.Table, rowID)
		if err != nil {
			e.logger.Debug("forget translations failed",
				slog.String("locale", locale),
				slog.String("table", d.Table),
				slog.String("row_id", rowID),
				slog.Any("error", err))
			continue
		}
		if outcome == DeleteStoreMissing {
			continue
		}
		e.store.Invalidate(locale)
	}
	return nil
}
