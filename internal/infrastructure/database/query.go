package database

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Query is a minimal SELECT builder. Conditions use "?" placeholders which
// Build renumbers to $1..$n in the order they were added.
type Query struct {
	table   string
	columns []string
	where   []string
	args    []any
	orderBy []string

	// ORDER BY follows WHERE in the statement, so its args are kept apart.
	orderArgs []any
	limit     int
}

func Select(table string, columns ...string) *Query {
	return &Query{table: table, columns: columns}
}

// Table is the unquoted name of the queried table.
func (q *Query) Table() string { return q.table }

func (q *Query) Where(cond string, args ...any) *Query {
	q.where = append(q.where, cond)
	q.args = append(q.args, args...)
	return q
}

func (q *Query) OrderBy(expr string, args ...any) *Query {
	q.orderBy = append(q.orderBy, expr)
	q.orderArgs = append(q.orderArgs, args...)
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) Build() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(q.columns) == 0 {
		b.WriteString("*")
	} else {
		cols := make([]string, len(q.columns))
		for i, c := range q.columns {
			cols[i] = pgx.Identifier{q.table, c}.Sanitize()
		}
		b.WriteString(strings.Join(cols, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(pgx.Identifier{q.table}.Sanitize())

	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	if len(q.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orderBy, ", "))
	}
	if q.limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.limit))
	}
	args := make([]any, 0, len(q.args)+len(q.orderArgs))
	args = append(args, q.args...)
	args = append(args, q.orderArgs...)
	return numberPlaceholders(b.String()), args
}

func numberPlaceholders(sql string) string {
	var b strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
