package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"translayer/internal/domain"
	"translayer/internal/domain/entities"
	"translayer/internal/ports/output"
	"translayer/internal/scaffold"
)

func newLocaleCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locale",
		Short: "Manage translation locales",
	}
	cmd.AddCommand(newLocaleNewCommand(out))
	cmd.AddCommand(newLocaleListCommand(out))
	return cmd
}

func newLocaleNewCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "new <locale>",
		Short: "Prepare the migration files for a new locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				gen := scaffold.NewGenerator(a.lister, a.cfg.MigrationsPath, a.cfg.DefaultLocale)
				return runLocaleNew(cmd.Context(), out, gen, a.t, a.cfg.OperatorLocale, args[0])
			})
		},
	}
}

// localeGenerator is the part of scaffold.Generator used by "locale new".
type localeGenerator interface {
	NewLocale(ctx context.Context, code string) (scaffold.Result, error)
}

func runLocaleNew(ctx context.Context, out io.Writer, gen localeGenerator, t output.T, lang, code string) error {
	if norm, ok := entities.NormalizeLocale(code); ok {
		fmt.Fprintln(out, t.T(lang, "locale_creating", map[string]any{"Locale": norm}))
	}

	res, err := gen.NewLocale(ctx, code)
	switch {
	case errors.Is(err, domain.ErrLocaleExists),
		errors.Is(err, domain.ErrDefaultLocale),
		errors.Is(err, domain.ErrInvalidLocale):
		return errors.New(t.T(lang, domain.Code(err), map[string]any{"Locale": res.Locale, "Table": res.Table}))
	case err != nil:
		return err
	}

	_, err = fmt.Fprintln(out, t.T(lang, "locale_created", map[string]any{"Up": res.UpPath}))
	return err
}

func newLocaleListCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List enabled locales",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				codes, err := a.locales.ListEnabled(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, a.t.T(a.cfg.OperatorLocale, "enabled_locales",
					map[string]any{"Locales": strings.Join(codes, ", ")}))
				return err
			})
		},
	}
}
