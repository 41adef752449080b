package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newMigrateCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				if err := a.migrator.Up(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(out, a.t.T(a.cfg.OperatorLocale, "migrations_applied", nil))
				return err
			})
		},
	}
}
