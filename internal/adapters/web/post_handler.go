package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"translayer/internal/domain/entities"
	"translayer/internal/ports/output"
)

type postResponse struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Summary   *string   `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type postRequest struct {
	Slug    string  `json:"slug" binding:"required"`
	Title   string  `json:"title" binding:"required"`
	Body    string  `json:"body"`
	Summary *string `json:"summary"`
}

func toPostResponse(p *entities.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Body:      p.Body,
		Summary:   p.Summary,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// filterFields are the post fields accepted as query filters, e.g.
// ?title=Bonjour or ?title=Bon%25&title_op=like.
var filterFields = []string{"slug", "title", "body", "summary"}

// scopeFromQuery reads ?locale= and ?translations=off.
func scopeFromQuery(c *gin.Context) entities.Scope {
	return entities.Scope{
		Locale:              c.Query("locale"),
		WithoutTranslations: c.Query("translations") == "off",
	}
}

func (h *Handler) ListPosts(c *gin.Context) {
	opts := output.PostListOptions{
		SortBy: c.Query("sort"),
		Desc:   c.Query("desc") == "true",
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit invalide"})
			return
		}
		opts.Limit = n
	}
	for _, field := range filterFields {
		if value, ok := c.GetQuery(field); ok {
			opts.Filters = append(opts.Filters, output.PostFilter{
				Field:    field,
				Operator: c.Query(field + "_op"),
				Value:    value,
			})
		}
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), scopeFromQuery(c), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]postResponse, len(posts))
	for i, p := range posts {
		out[i] = toPostResponse(p)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := h.posts.GetPost(c.Request.Context(), scopeFromQuery(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post := &entities.Post{Slug: req.Slug, Title: req.Title, Body: req.Body, Summary: req.Summary}
	if err := h.posts.CreatePost(c.Request.Context(), post); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(post))
}

func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post := &entities.Post{ID: id, Slug: req.Slug, Title: req.Title, Body: req.Body, Summary: req.Summary}
	if err := h.posts.UpdatePost(c.Request.Context(), post); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := h.posts.DeletePost(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalide"})
		return 0, false
	}
	return id, true
}
