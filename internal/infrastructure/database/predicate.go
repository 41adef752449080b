package database

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"translayer/internal/domain"
	"translayer/internal/domain/entities"
)

var comparisonOperators = map[string]string{
	"=":     "=",
	"<>":    "<>",
	"!=":    "<>",
	"<":     "<",
	"<=":    "<=",
	">":     ">",
	">=":    ">=",
	"like":  "LIKE",
	"ilike": "ILIKE",
}

// TranslatedColumn addresses the fields of Descriptor either through their
// base columns or, when Locale differs from Fallback, through Locale's
// translation table.
type TranslatedColumn struct {
	Descriptor entities.Descriptor
	Locale     string
	Fallback   string
	// IDColumn is the base table's key matched against related_id. Defaults to "id".
	IDColumn string
}

func (c TranslatedColumn) translated(field string) bool {
	return c.Locale != "" && c.Locale != c.Fallback && c.Descriptor.Translatable(field)
}

// expr returns the SQL expression of field and the args it binds.
func (c TranslatedColumn) expr(field string) (string, []any) {
	table := c.Descriptor.Table
	if !c.translated(field) {
		return pgx.Identifier{table, field}.Sanitize(), nil
	}
	idColumn := c.IDColumn
	if idColumn == "" {
		idColumn = "id"
	}
	return fmt.Sprintf(
		`(SELECT t.translation FROM %s AS t WHERE t.related_table = ? AND t.related_field = ? AND t.related_id = %s::text)`,
		pgx.Identifier{entities.StoreTable(c.Locale)}.Sanitize(),
		pgx.Identifier{table, idColumn}.Sanitize(),
	), []any{table, field}
}

// WhereTranslated filters q on the translated value of field. args is either
// (value), compared with "=", or (operator, value). Under an overlaid locale
// only the locale's stored translation is compared: rows without a record for
// field never match, even though reads show their base value. OrderByTranslated
// differs and sorts such rows on their base value.
func WhereTranslated(q *Query, c TranslatedColumn, field string, args ...any) (*Query, error) {
	var op string
	var value any
	switch len(args) {
	case 1:
		op, value = "=", args[0]
	case 2:
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("where %s: operator %v: %w", field, args[0], domain.ErrInvalidOperator)
		}
		op, value = s, args[1]
	default:
		return nil, fmt.Errorf("where %s: expected value or operator and value, got %d args", field, len(args))
	}

	sqlOp, ok := comparisonOperators[strings.ToLower(strings.TrimSpace(op))]
	if !ok {
		return nil, fmt.Errorf("where %s: operator %q: %w", field, op, domain.ErrInvalidOperator)
	}

	expr, exprArgs := c.expr(field)
	return q.Where(expr+" "+sqlOp+" ?", append(exprArgs, value)...), nil
}

// OrderByTranslated sorts q on the translated value of field. Rows without a
// translation sort on their base value.
func OrderByTranslated(q *Query, c TranslatedColumn, field string, desc bool) *Query {
	expr, args := c.expr(field)
	if c.translated(field) {
		expr = fmt.Sprintf("COALESCE(%s, %s)", expr, pgx.Identifier{c.Descriptor.Table, field}.Sanitize())
	}
	if desc {
		expr += " DESC"
	}
	return q.OrderBy(expr, args...)
}
