package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"translayer/internal/adapters/web"
)

func newServeCommand() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withApp(ctx, func(a *app) error {
				if migrateFirst {
					if err := a.migrator.Up(); err != nil {
						return err
					}
				}

				gin.SetMode(gin.ReleaseMode)
				router := web.NewRouter(web.RouterConfig{CORSOrigin: a.cfg.CORSOrigin}, a.posts, a.locales, a.t, a.logger)
				srv := &http.Server{Addr: a.cfg.HTTPAddr, Handler: router}

				errCh := make(chan error, 1)
				go func() { errCh <- srv.ListenAndServe() }()
				a.logger.Info("http server listening", slog.String("addr", a.cfg.HTTPAddr))

				select {
				case err := <-errCh:
					if errors.Is(err, http.ErrServerClosed) {
						return nil
					}
					return err
				case <-ctx.Done():
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "Apply pending migrations before serving")
	return cmd
}
