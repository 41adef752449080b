package input

import (
	"context"

	"translayer/internal/domain/entities"
	"translayer/internal/ports/output"
)

type PostUseCase interface {
	CreatePost(ctx context.Context, post *entities.Post) error
	GetPost(ctx context.Context, scope entities.Scope, id int64) (*entities.Post, error)
	ListPosts(ctx context.Context, scope entities.Scope, opts output.PostListOptions) ([]*entities.Post, error)
	UpdatePost(ctx context.Context, post *entities.Post) error
	DeletePost(ctx context.Context, id int64) error
	RefreshPost(ctx context.Context, post *entities.Post) error
}
