// Package middleware provides HTTP middleware for the feedback service.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shelkonty/feedback-whole/internal/service"
)

// Context keys set by the auth middleware.
const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
)

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(jwtService service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// OptionalAuth sets the user identity when a valid bearer token is present
// and lets the request through either way. Used by the public listing so
// hasVoted flags can be computed for logged-in callers.
func OptionalAuth(jwtService service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractBearerToken(c); token != "" {
			if claims, err := jwtService.ValidateToken(token); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextEmail, claims.Email)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
