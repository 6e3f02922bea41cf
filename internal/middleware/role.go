package middleware

import (
	"net/http"

	"b200/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const RoleAdmin = "admin"

// RequireRole ensures that the authenticated caller has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		if role != requiredRole {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}
