package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jewelstore-backend/internal/shared/policy"
)

// RequireCapability rejects requests whose actor role does not carry the
// given capability. Role checks live in one place (internal/shared/policy)
// instead of being re-derived inside each handler.
func RequireCapability(cap policy.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := policy.RoleGuest
		if r, exists := c.Get("role"); exists {
			if s, ok := r.(string); ok {
				role = policy.Role(s)
			}
		}

		if !policy.Allows(role, cap) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: insufficient privileges",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminMiddleware is a shorthand for the admin back-office routes.
func AdminMiddleware() gin.HandlerFunc {
	return RequireCapability(policy.CapManageOrders)
}
