package output

import "context"

type LocaleRepository interface {
	// ListEnabled returns the codes of enabled locales, ordered by code.
	ListEnabled(ctx context.Context) ([]string, error)
}

// LocaleHolder carries the ambient session/request locale.
type LocaleHolder interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, code string)
}
