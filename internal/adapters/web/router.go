package web

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"translayer/internal/ports/input"
	"translayer/internal/ports/output"
)

type RouterConfig struct {
	CORSOrigin string
}

// NewRouter wires the HTTP routes: locale middleware -> handlers -> use cases.
func NewRouter(cfg RouterConfig, posts input.PostUseCase, locales input.LocaleUseCase, t output.T, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if cfg.CORSOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(LocaleMiddleware())

	h := NewHandler(posts, locales, t, logger)

	r.GET("/locale/:code", h.SwitchLocale)
	r.GET("/locales", h.ListLocales)

	p := r.Group("/posts")
	p.GET("", h.ListPosts)
	p.POST("", h.CreatePost)
	p.GET("/:id", h.GetPost)
	p.PUT("/:id", h.UpdatePost)
	p.DELETE("/:id", h.DeletePost)

	return r
}
