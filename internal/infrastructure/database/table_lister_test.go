package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestListTablesShowTablesDialect(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery("SHOW TABLES").WillReturnRows(
		pgxmock.NewRows([]string{"schema_name", "table_name", "type"}).
			AddRow("public", "posts", "table").
			AddRow("public", "translations_fr", "table"))

	names, err := NewTableLister(mock).ListTables(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"posts", "translations_fr"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTablesFallsBackToCatalog(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery("SHOW TABLES").WillReturnError(&pgconn.PgError{
		Code:    "42704",
		Message: `unrecognized configuration parameter "tables"`,
	})
	mock.ExpectQuery("FROM information_schema.tables").WillReturnRows(
		pgxmock.NewRows([]string{"table_name"}).AddRow("locales").AddRow("posts"))

	names, err := NewTableLister(mock).ListTables(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"locales", "posts"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTablesConnectionFailureDoesNotFallBack(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	boom := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	mock.ExpectQuery("SHOW TABLES").WillReturnError(boom)

	_, err := NewTableLister(mock).ListTables(context.Background())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTablesBothDialectsFail(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery("SHOW TABLES").WillReturnError(&pgconn.PgError{Code: "42601"})
	boom := &pgconn.PgError{Code: "42501", Message: "permission denied for schema information_schema"}
	mock.ExpectQuery("FROM information_schema.tables").WillReturnError(boom)

	_, err := NewTableLister(mock).ListTables(context.Background())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
