package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"translayer/internal/domain"
	"translayer/internal/domain/entities"
	"translayer/internal/ports/output"
)

var stamp = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func postRows() *pgxmock.Rows {
	return pgxmock.NewRows(postColumns)
}

func TestPostRepositoryFindByID(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(postRows().AddRow(int64(7), "hello", "Hello", "World", nil, stamp, stamp))

	p, err := NewPostRepository(mock).FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), p.ID)
	require.Equal(t, "Hello", p.Title)
	require.Nil(t, p.Summary)
	require.True(t, p.TranslationsEnabled())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryFindByIDNotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "posts"`)).
		WithArgs(int64(99)).
		WillReturnRows(postRows())

	_, err := NewPostRepository(mock).FindByID(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostRepositoryListFiltersOnTranslation(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "translations_fr" AS t`)).
		WithArgs("posts", "title", "Bonjour", "posts", "title").
		WillReturnRows(postRows().AddRow(int64(7), "hello", "Hello", "World", nil, stamp, stamp))

	posts, err := NewPostRepository(mock).List(context.Background(), output.PostListOptions{
		Locale:  "fr",
		Filters: []output.PostFilter{{Field: "title", Value: "Bonjour"}},
		SortBy:  "title",
		Limit:   10,
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Hello", posts[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryListWithoutLocaleUsesBaseColumns(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE "posts"."title" LIKE $1 ORDER BY "posts"."created_at" DESC, "posts"."id"`)).
		WithArgs("Hel%").
		WillReturnRows(postRows())

	posts, err := NewPostRepository(mock).List(context.Background(), output.PostListOptions{
		Filters: []output.PostFilter{{Field: "title", Operator: "like", Value: "Hel%"}},
		SortBy:  "created_at",
		Desc:    true,
	})
	require.NoError(t, err)
	require.Empty(t, posts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryListRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewPostRepository(mock)

	_, err := repo.List(context.Background(), output.PostListOptions{
		Filters: []output.PostFilter{{Field: "id", Value: "7"}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidField)

	_, err = repo.List(context.Background(), output.PostListOptions{SortBy: "password"})
	require.ErrorIs(t, err, domain.ErrInvalidField)

	_, err = repo.List(context.Background(), output.PostListOptions{
		Filters: []output.PostFilter{{Field: "slug", Operator: "~*", Value: "x"}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidOperator)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryCreate(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	summary := "Court"
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts (slug, title, body, summary)`)).
		WithArgs("hello", "Hello", "World", &summary).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), stamp, stamp))

	p := &entities.Post{Slug: "hello", Title: "Hello", Body: "World", Summary: &summary}
	require.NoError(t, NewPostRepository(mock).Create(context.Background(), p))
	require.Equal(t, int64(3), p.ID)
	require.Equal(t, stamp, p.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryUpdateAndDelete(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	later := stamp.Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE posts SET`)).
		WithArgs(int64(7), "hello", "Hello", "World", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(later))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE posts SET`)).
		WithArgs(int64(8), "gone", "Gone", "", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewPostRepository(mock)
	ctx := context.Background()

	p := &entities.Post{ID: 7, Slug: "hello", Title: "Hello", Body: "World"}
	require.NoError(t, repo.Update(ctx, p))
	require.Equal(t, later, p.UpdatedAt)

	err := repo.Update(ctx, &entities.Post{ID: 8, Slug: "gone", Title: "Gone"})
	require.ErrorIs(t, err, domain.ErrPostNotFound)

	require.NoError(t, repo.Delete(ctx, 7))
	require.ErrorIs(t, repo.Delete(ctx, 7), domain.ErrPostNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLocaleRepositoryListEnabled(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT code FROM locales WHERE enabled`)).
		WillReturnRows(pgxmock.NewRows([]string{"code"}).AddRow("en").AddRow("fr"))

	codes, err := NewLocaleRepository(mock).ListEnabled(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"en", "fr"}, codes)
	require.NoError(t, mock.ExpectationsWereMet())
}
