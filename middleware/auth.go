// Package middleware holds the gin middleware shared by every route group.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentesana-server/auth"
	"mentesana-server/logger"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
)

// Auth requires a valid "Authorization: Bearer <token>" header and stores
// the caller's id on the context.
func Auth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			logger.Debug("token rejected", "path", c.FullPath(), "err", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userEmailKey, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated caller, or 0 outside Auth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func UserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}
