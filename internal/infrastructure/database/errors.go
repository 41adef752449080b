package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes.
const (
	codeUndefinedTable = "42P01"
)

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}

// isStatementRejected reports whether the server received and refused the
// statement, as opposed to a failure reaching the server.
func isStatementRejected(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}
