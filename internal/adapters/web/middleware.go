package web

import (
	"github.com/gin-gonic/gin"

	"translayer/internal/infrastructure/session"
)

// LocaleCookie stores the locale chosen through /locale/:code.
const LocaleCookie = "locale"

// LocaleMiddleware pins the locale remembered in the cookie onto the request
// context, where the locale directory finds it as the ambient locale.
func LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		code, _ := c.Cookie(LocaleCookie)
		ctx := session.NewContext(c.Request.Context(), session.New(code))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
