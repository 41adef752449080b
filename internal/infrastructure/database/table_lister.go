package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"translayer/internal/ports/output"
)

var _ output.TableLister = (*TableLister)(nil)

const (
	showTablesSQL = `SHOW TABLES`
	catalogSQL    = `SELECT table_name FROM information_schema.tables
WHERE table_schema = ANY (current_schemas(false)) AND table_type = 'BASE TABLE'
ORDER BY table_name`
)

// TableLister introspects table names. It speaks the SHOW TABLES dialect
// (CockroachDB and other wire-compatible engines) first and falls back to the
// information_schema catalog when the server rejects that statement.
type TableLister struct {
	db DBTX
}

func NewTableLister(db DBTX) *TableLister {
	return &TableLister{db: db}
}

func (l *TableLister) ListTables(ctx context.Context) ([]string, error) {
	names, err := l.showTables(ctx)
	if err == nil {
		return names, nil
	}
	if !isStatementRejected(err) {
		return nil, fmt.Errorf("show tables: %w", err)
	}

	names, err = l.catalogTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog tables: %w", err)
	}
	return names, nil
}

// showTables reads the table_name column when the engine returns several
// columns, the first column otherwise.
func (l *TableLister) showTables(ctx context.Context) ([]string, error) {
	rows, err := l.db.Query(ctx, showTablesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	col := 0
	for i, fd := range rows.FieldDescriptions() {
		if fd.Name == "table_name" {
			col = i
			break
		}
	}

	var names []string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		if col >= len(values) {
			continue
		}
		if name, ok := values[col].(string); ok {
			names = append(names, name)
		}
	}
	return names, rows.Err()
}

func (l *TableLister) catalogTables(ctx context.Context) ([]string, error) {
	rows, err := l.db.Query(ctx, catalogSQL)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
