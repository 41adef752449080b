// Package scaffold generates the migrations that introduce a new locale's
// translation table.
package scaffold

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"text/template"
	"time"

	"translayer/internal/domain"
	"translayer/internal/domain/entities"
	"translayer/internal/ports/output"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Result names the files written for a locale.
type Result struct {
	Locale   string
	Table    string
	UpPath   string
	DownPath string
}

type Generator struct {
	lister        output.TableLister
	dir           string
	defaultLocale string
	now           func() time.Time
}

func NewGenerator(lister output.TableLister, migrationsDir, defaultLocale string) *Generator {
	return &Generator{
		lister:        lister,
		dir:           migrationsDir,
		defaultLocale: defaultLocale,
		now:           time.Now,
	}
}

// NewLocale writes a golang-migrate up/down pair creating code's translation
// table and enabling it in the locales table.
func (g *Generator) NewLocale(ctx context.Context, code string) (Result, error) {
	locale, ok := entities.NormalizeLocale(code)
	if !ok {
		return Result{}, fmt.Errorf("new locale %q: %w", code, domain.ErrInvalidLocale)
	}
	res := Result{Locale: locale, Table: entities.StoreTable(locale)}

	if locale == g.defaultLocale {
		return res, fmt.Errorf("new locale %q: %w", locale, domain.ErrDefaultLocale)
	}

	tables, err := g.lister.ListTables(ctx)
	if err != nil {
		return res, fmt.Errorf("new locale %q: %w", locale, err)
	}
	if slices.Contains(tables, res.Table) {
		return res, fmt.Errorf("new locale %q: %w", locale, domain.ErrLocaleExists)
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return res, fmt.Errorf("new locale %q: create migrations dir: %w", locale, err)
	}

	base := fmt.Sprintf("%s_create_%s_locale", g.now().UTC().Format("20060102150405"), locale)
	res.UpPath = filepath.Join(g.dir, base+".up.sql")
	res.DownPath = filepath.Join(g.dir, base+".down.sql")

	data := map[string]string{"Locale": locale, "Table": res.Table}
	for path, name := range map[string]string{
		res.UpPath:   "locale.up.sql.tmpl",
		res.DownPath: "locale.down.sql.tmpl",
	} {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
			return res, fmt.Errorf("new locale %q: render %s: %w", locale, name, err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return res, fmt.Errorf("new locale %q: %w", locale, err)
		}
	}
	return res, nil
}
