package utilities

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lapados-backend/internal/model"
)

// AuthMiddleware ensures each request carries a valid bearer token and
// stores the resolved identity in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := ValidateToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("full_name", claims.FullName)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// AdminMiddleware rejects requests whose token does not carry the admin
// role. Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != model.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserEmail returns the authenticated caller's email.
func CurrentUserEmail(c *gin.Context) string {
	email, _ := c.Get("email")
	s, _ := email.(string)
	return s
}

// CurrentUserName returns the authenticated caller's display name.
func CurrentUserName(c *gin.Context) string {
	name, _ := c.Get("full_name")
	s, _ := name.(string)
	return s
}

// IsAdminRequest reports whether the authenticated caller is an admin.
func IsAdminRequest(c *gin.Context) bool {
	role, _ := c.Get("role")
	return role == model.RoleAdmin
}
