package middleware

import (
	"net/http"
	"strings"

	"conciergerie-backend/models"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextAdminID = "adminId"
	ContextRole    = "role"
)

// RequireAuth validates the bearer token and stores the admin id and role on
// the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		adminID, role, err := utils.AdminClaims(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set(ContextAdminID, adminID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireAdmin gates every reservation mutation. It runs after RequireAuth and
// rejects non-admin roles before any handler logic.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRole)
		if !ok || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// ActorRole returns the role stored on the context, empty when unauthenticated.
func ActorRole(c *gin.Context) string {
	if v, ok := c.Get(ContextRole); ok {
		if s, ok2 := v.(string); ok2 {
			return s
		}
	}
	return ""
}
