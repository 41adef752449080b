package database

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator applies the SQL migrations under a directory and signals
// subscribers once a run completes.
type Migrator struct {
	dsn    string
	path   string
	logger *slog.Logger

	mu        sync.Mutex
	listeners []func()
}

func NewMigrator(dsn, migrationsPath string, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{dsn: dsn, path: migrationsPath, logger: logger}
}

// Subscribe registers fn to run after every completed migration run.
func (m *Migrator) Subscribe(fn func()) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Up applies all pending migrations. A run with nothing to apply still
// counts as completed.
func (m *Migrator) Up() error {
	mg, err := migrate.New(fmt.Sprintf("file://%s", m.path), m.dsn)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer mg.Close()

	err = mg.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := mg.Version()
	m.logger.Info("migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	m.notify()
	return nil
}

func (m *Migrator) notify() {
	m.mu.Lock()
	listeners := append([]func(){}, m.listeners...)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
