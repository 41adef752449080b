package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"translayer/internal/domain"
	"translayer/internal/ports/input"
	"translayer/internal/ports/output"
)

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	posts   input.PostUseCase
	locales input.LocaleUseCase
	t       output.T
	logger  *slog.Logger
}

func NewHandler(posts input.PostUseCase, locales input.LocaleUseCase, t output.T, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{posts: posts, locales: locales, t: t, logger: logger}
}

const cookieMaxAge = 365 * 24 * 60 * 60

// SwitchLocale stores the requested locale (or the default when it is not
// enabled) and sends the client back where it came from.
func (h *Handler) SwitchLocale(c *gin.Context) {
	locale, err := h.locales.Switch(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.SetCookie(LocaleCookie, locale, cookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, backTarget(c.GetHeader("Referer")))
}

func (h *Handler) ListLocales(c *gin.Context) {
	ctx := c.Request.Context()
	codes, err := h.locales.ListEnabled(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"current": h.locales.ResolveEffective(ctx, ""),
		"enabled": codes,
	})
}

// backTarget keeps only the path and query of the referer so the redirect
// never leaves the site.
func backTarget(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || u.Path == "" {
		return "/"
	}
	target := u.EscapedPath()
	// "//host" and "/\host" are read by browsers as another origin.
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}

func statusFor(code string) int {
	switch code {
	case "post_not_found":
		return http.StatusNotFound
	case "invalid_locale", "invalid_operator", "invalid_field":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail renders err in the caller's locale.
func (h *Handler) fail(c *gin.Context, err error) {
	locale := h.locales.ResolveEffective(c.Request.Context(), c.Query("locale"))
	code := domain.Code(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		code = "generic_error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": h.t.T(locale, code, nil)})
}
