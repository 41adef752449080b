package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"translayer/internal/application"
	"translayer/internal/config"
	"translayer/internal/infrastructure/database"
	"translayer/internal/infrastructure/i18n"
	"translayer/internal/infrastructure/logging"
	"translayer/internal/infrastructure/session"
)

// app holds the process-wide components, built once per command run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	t      *i18n.Translator

	pool     *pgxpool.Pool
	lister   *database.TableLister
	tables   *application.TableRegistry
	locales  *application.LocaleDirectory
	engine   *application.OverlayEngine
	posts    *application.PostService
	migrator *database.Migrator

	closers []io.Closer
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(logging.Config{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
		MaxFiles:  cfg.LogMaxFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		t:       i18n.NewTranslator(cfg.OperatorLocale, logger),
		pool:    pool,
		closers: []io.Closer{logCloser},
	}

	a.lister = database.NewTableLister(pool)
	a.tables = application.NewTableRegistry(a.lister)
	a.locales = application.NewLocaleDirectory(
		database.NewLocaleRepository(pool), session.Holder{}, cfg.DefaultLocale, cfg.FallbackLocale)
	store := application.NewTranslationStore(database.NewTranslationRepository(pool))
	a.engine = application.NewOverlayEngine(a.locales, a.tables, store, logger)
	a.posts = application.NewPostService(database.NewPostRepository(pool), a.engine)

	a.migrator = database.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, logger)
	a.migrator.Subscribe(a.tables.Invalidate)

	return a, nil
}

func (a *app) Close() {
	a.pool.Close()
	for _, c := range a.closers {
		_ = c.Close()
	}
}
