package input

import "context"

type LocaleUseCase interface {
	ListEnabled(ctx context.Context) ([]string, error)
	ResolveEffective(ctx context.Context, override string) string
	Switch(ctx context.Context, candidate string) (string, error)
}
