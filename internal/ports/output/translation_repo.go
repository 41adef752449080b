package output

import (
	"context"

	"translayer/internal/domain/entities"
)

// TranslationRepository reads and writes one locale's translation table.
// Operations against a locale whose table does not exist fail with an error
// wrapping domain.ErrStoreMissing.
type TranslationRepository interface {
	LoadAll(ctx context.Context, locale string) ([]entities.Translation, error)
	Upsert(ctx context.Context, locale string, t entities.Translation) error
	DeleteForRow(ctx context.Context, locale, table, rowID string) (int64, error)
}
