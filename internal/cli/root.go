package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "translayer",
		Short:         "Per-locale translation overlay for database entities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand(out))
	cmd.AddCommand(newLocaleCommand(out))
	return cmd
}

// withApp builds the app for the duration of fn.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
