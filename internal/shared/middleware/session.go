package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieName = "js_session"

// SessionMiddleware guarantees every request carries a session id so guest
// carts survive across requests. Authenticated requests keep their session
// id too; the cart service merges it into the user cart on login.
func SessionMiddleware(cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			if cookie, err := c.Cookie(sessionCookieName); err == nil {
				sessionID = cookie
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			// 30 days
			c.SetCookie(sessionCookieName, sessionID, 30*24*3600, "/", "", cookieSecure, true)
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
