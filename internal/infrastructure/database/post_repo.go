package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"translayer/internal/domain"
	"translayer/internal/domain/entities"
	"translayer/internal/ports/output"
)

var _ output.PostRepository = (*PostRepository)(nil)

var postColumns = []string{"id", "slug", "title", "body", "summary", "created_at", "updated_at"}

var (
	postFilterable = map[string]bool{"slug": true, "title": true, "body": true, "summary": true}
	postSortable   = map[string]bool{"id": true, "slug": true, "title": true, "body": true, "summary": true, "created_at": true}
)

// PostRepository implements output.PostRepository. It returns base rows only;
// overlaying translations is the caller's concern.
type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

func scanPost(row pgx.Row) (*entities.Post, error) {
	var p entities.Post
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Summary, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO posts (slug, title, body, summary) VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`,
		post.Slug, post.Title, post.Body, post.Summary,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*entities.Post, error) {
	sql, args := Select("posts", postColumns...).Where(`"posts"."id" = ?`, id).Build()
	p, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get post by id %d: %w", id, domain.ErrPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post by id %d: %w", id, err)
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context, opts output.PostListOptions) ([]*entities.Post, error) {
	col := TranslatedColumn{Descriptor: entities.PostDescriptor, Locale: opts.Locale}
	q := Select("posts", postColumns...)

	for _, f := range opts.Filters {
		if !postFilterable[f.Field] {
			return nil, fmt.Errorf("list posts: filter %q: %w", f.Field, domain.ErrInvalidField)
		}
		op := f.Operator
		if op == "" {
			op = "="
		}
		var err error
		if q, err = WhereTranslated(q, col, f.Field, op, f.Value); err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
	}

	if opts.SortBy != "" {
		if !postSortable[opts.SortBy] {
			return nil, fmt.Errorf("list posts: sort %q: %w", opts.SortBy, domain.ErrInvalidField)
		}
		q = OrderByTranslated(q, col, opts.SortBy, opts.Desc)
	}
	q.OrderBy(`"posts"."id"`)
	if opts.Limit > 0 {
		q.Limit(opts.Limit)
	}

	sql, args := q.Build()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	err := r.db.QueryRow(ctx,
		`UPDATE posts SET slug = $2, title = $3, body = $4, summary = $5, updated_at = now()
WHERE id = $1 RETURNING updated_at`,
		post.ID, post.Slug, post.Title, post.Body, post.Summary,
	).Scan(&post.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update post %d: %w", post.ID, domain.ErrPostNotFound)
	}
	if err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete post %d: %w", id, domain.ErrPostNotFound)
	}
	return nil
}
