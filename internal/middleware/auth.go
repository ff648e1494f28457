// Package middleware holds the gin middleware shared by all API routes:
// bearer-token auth, request logging, request metrics and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rdevang/smartsplit/internal/auth"
)

const contextUserIDKey = "user_id"

// RequireAuth validates the Authorization bearer token and stores the
// authenticated user id on the request context. Requests without a
// valid token are rejected with 401.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth, or ""
// on an unauthenticated request.
func UserID(c *gin.Context) string {
	id, _ := c.Get(contextUserIDKey)
	s, _ := id.(string)
	return s
}
