package session

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName = "esencia_session"
	CtxIDKey   = "session_id"

	cookieMaxAge = 60 * 60 * 24 * 30
)

// Middleware assigns every browser a stable session id cookie. Cart,
// favorites and checkout state all key off it.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(CookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(CookieName, sid, cookieMaxAge, "/", "", false, true)
		}
		c.Set(CtxIDKey, sid)
		c.Next()
	}
}

func ID(c *gin.Context) string {
	return c.GetString(CtxIDKey)
}
