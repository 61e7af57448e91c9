package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/userhub/userhub/internal/domain/entity"
	"github.com/userhub/userhub/pkg/helpers"
	"github.com/userhub/userhub/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserIDKey = "userID"
	CtxEmailKey  = "userEmail"
	CtxRoleKey   = "userRole"
)

// Auth validates the bearer access token from the Authorization header and
// injects the caller's identity into the Gin context. Every failure is the
// same uniform 401.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.AbortUnauthorized(c, "Authentication required")
			return
		}
		claims, err := jwt.ParseAccessToken(strings.TrimSpace(token))
		if err != nil {
			response.AbortUnauthorized(c, "Authentication required")
			return
		}
		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxEmailKey, claims.Email)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin allows the request only for callers holding the Admin role.
// It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRoleKey) != entity.RoleAdmin {
			response.AbortUnauthorized(c, "Insufficient permissions")
			return
		}
		c.Next()
	}
}
