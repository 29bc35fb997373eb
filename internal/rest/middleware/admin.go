package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

// AdminOnly rejects callers whose token does not carry the admin role.
// Must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role.(string) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
