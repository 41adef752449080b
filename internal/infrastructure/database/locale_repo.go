package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"translayer/internal/ports/output"
)

var _ output.LocaleRepository = (*LocaleRepository)(nil)

// LocaleRepository reads the locales reference table.
type LocaleRepository struct {
	db DBTX
}

func NewLocaleRepository(db DBTX) *LocaleRepository {
	return &LocaleRepository{db: db}
}

func (r *LocaleRepository) ListEnabled(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT code FROM locales WHERE enabled ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	return codes, nil
}
