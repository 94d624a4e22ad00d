package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/pkg/jwt"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
)

// JWTAuthMiddleware creates a middleware to validate JWT tokens
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Paths that don't require auth
		excludedPaths := []string{
			"/api/auth/login",
			"/api/health",
			"/", // Root liveness endpoint
		}

		currentPath := c.Request.URL.Path
		for _, path := range excludedPaths {
			if currentPath == path {
				c.Next()
				return
			}
		}

		// WebSocket clients can't set headers from the browser, so the token
		// may arrive as a query param instead.
		if c.Request.Header.Get("Upgrade") == "websocket" {
			token := c.Query("token")
			if token == "" {
				var ok bool
				token, ok = bearerToken(c)
				if !ok {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
					return
				}
			}

			claims, err := jwt.ValidateToken(token, jwtSecret)
			if err != nil {
				logger.Warn("Invalid JWT token for WebSocket",
					logger.String("error", err.Error()),
					logger.String("path", currentPath))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}

			c.Set("username", claims.Username)
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			return
		}

		claims, err := jwt.ValidateToken(token, jwtSecret)
		if err != nil {
			logger.Warn("Invalid JWT token", logger.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
