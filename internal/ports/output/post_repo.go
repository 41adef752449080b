package output

import (
	"context"

	"translayer/internal/domain/entities"
)

// PostFilter compares a post field against a value, optionally against its
// translation in Locale.
type PostFilter struct {
	Field    string
	Operator string
	Value    string
}

type PostListOptions struct {
	// Locale selects the translation table used by Filters and SortBy.
	// Empty means base columns.
	Locale  string
	Filters []PostFilter
	SortBy  string
	Desc    bool
	Limit   int
}

type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id int64) (*entities.Post, error)
	List(ctx context.Context, opts PostListOptions) ([]*entities.Post, error)
	Update(ctx context.Context, post *entities.Post) error
	Delete(ctx context.Context, id int64) error
}
