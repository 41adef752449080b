package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"translayer/internal/domain"
	"translayer/internal/domain/entities"
	"translayer/internal/ports/output"
)

var _ output.TranslationRepository = (*TranslationRepository)(nil)

// TranslationRepository implements output.TranslationRepository over the
// translations_<locale> tables.
type TranslationRepository struct {
	db DBTX
}

func NewTranslationRepository(db DBTX) *TranslationRepository {
	return &TranslationRepository{db: db}
}

func storeIdent(locale string) string {
	return pgx.Identifier{entities.StoreTable(locale)}.Sanitize()
}

// storeErr maps a missing table onto domain.ErrStoreMissing.
func storeErr(op, locale string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%s %s: %w", op, entities.StoreTable(locale), domain.ErrStoreMissing)
	}
	return fmt.Errorf("%s %s: %w", op, entities.StoreTable(locale), err)
}

func (r *TranslationRepository) LoadAll(ctx context.Context, locale string) ([]entities.Translation, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(
		`SELECT id, related_table, related_field, related_id, translation FROM %s ORDER BY id`,
		storeIdent(locale)))
	if err != nil {
		return nil, storeErr("load translations", locale, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Translation, error) {
		var t entities.Translation
		err := row.Scan(&t.ID, &t.RelatedTable, &t.RelatedField, &t.RelatedID, &t.Text)
		return t, err
	})
	if err != nil {
		return nil, storeErr("load translations", locale, err)
	}
	return out, nil
}

func (r *TranslationRepository) Upsert(ctx context.Context, locale string, t entities.Translation) error {
	_, err := r.db.Exec(ctx, fmt.Sprintf(
		`INSERT INTO %s (related_table, related_field, related_id, translation)
VALUES ($1, $2, $3, $4)
ON CONFLICT (related_table, related_field, related_id)
DO UPDATE SET translation = EXCLUDED.translation, updated_at = now()`,
		storeIdent(locale)),
		t.RelatedTable, t.RelatedField, t.RelatedID, t.Text)
	if err != nil {
		return storeErr("upsert translation", locale, err)
	}
	return nil
}

func (r *TranslationRepository) DeleteForRow(ctx context.Context, locale, table, rowID string) (int64, error) {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE related_table = $1 AND related_id = $2`,
		storeIdent(locale)),
		table, rowID)
	if err != nil {
		return 0, storeErr("delete translations", locale, err)
	}
	return tag.RowsAffected(), nil
}
