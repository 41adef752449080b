package application

import (
	"context"

	"translayer/internal/domain/entities"
	"translayer/internal/ports/input"
	"translayer/internal/ports/output"
)

var _ input.PostUseCase = (*PostService)(nil)

type PostService struct {
	repo   output.PostRepository
	engine *OverlayEngine
}

func NewPostService(repo output.PostRepository, engine *OverlayEngine) *PostService {
	return &PostService{repo: repo, engine: engine}
}

// CreatePost inserts the base row, then records the translatable fields in the
// ambient locale's store when that locale is overlaid.
func (s *PostService) CreatePost(ctx context.Context, post *entities.Post) error {
	if err := s.repo.Create(ctx, post); err != nil {
		return err
	}
	routed, err := s.engine.Persist(ctx, entities.PostDescriptor, post, s.reload(post))
	if err != nil {
		return err
	}
	if routed {
		return s.hydrate(ctx, post)
	}
	return nil
}

func (s *PostService) GetPost(ctx context.Context, scope entities.Scope, id int64) (*entities.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Hydrate(ctx, scope, entities.PostDescriptor, []entities.Translatable{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts runs opts with filters and sorting against the translated values
// of the effective locale.
func (s *PostService) ListPosts(ctx context.Context, scope entities.Scope, opts output.PostListOptions) ([]*entities.Post, error) {
	locale, err := s.engine.OverlayLocale(ctx, scope, entities.PostDescriptor)
	if err != nil {
		return nil, err
	}
	opts.Locale = locale

	posts, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	rows := make([]entities.Translatable, len(posts))
	for i, p := range posts {
		rows[i] = p
	}
	if err := s.engine.Hydrate(ctx, scope, entities.PostDescriptor, rows); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost saves post. Under an overlaid locale the translatable fields go
// to the store and the base columns keep their stored values; the other
// columns are written as usual.
func (s *PostService) UpdatePost(ctx context.Context, post *entities.Post) error {
	if _, err := s.repo.FindByID(ctx, post.ID); err != nil {
		return err
	}

	routed, err := s.engine.Persist(ctx, entities.PostDescriptor, post, func(ctx context.Context) error {
		base, err := s.repo.FindByID(ctx, post.ID)
		if err != nil {
			return err
		}
		post.Title = base.Title
		post.Body = base.Body
		post.Summary = base.Summary
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return err
	}
	if routed {
		return s.hydrate(ctx, post)
	}
	return nil
}

// DeletePost drops the post's translations from every store, then the row.
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	post := &entities.Post{ID: id}
	if err := s.engine.Forget(ctx, entities.PostDescriptor, post.TranslationID()); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// RefreshPost reloads post from storage, honoring its overlay switch.
func (s *PostService) RefreshPost(ctx context.Context, post *entities.Post) error {
	if err := s.reload(post)(ctx); err != nil {
		return err
	}
	return s.hydrate(ctx, post)
}

func (s *PostService) reload(post *entities.Post) Reloader {
	return func(ctx context.Context) error {
		base, err := s.repo.FindByID(ctx, post.ID)
		if err != nil {
			return err
		}
		base.Overlay = post.Overlay
		*post = *base
		return nil
	}
}

func (s *PostService) hydrate(ctx context.Context, post *entities.Post) error {
	scope := entities.Scope{WithoutTranslations: !post.TranslationsEnabled()}
	return s.engine.Hydrate(ctx, scope, entities.PostDescriptor, []entities.Translatable{post})
}
