package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/pkg/config"
	"github.com/jbrusey/llm-council/internal/pkg/jwt"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
)

// RegisterRoutes registers the authentication endpoints
func RegisterRoutes(engine *gin.Engine, cfg *config.Config) {
	authGroup := engine.Group("/api/auth")
	{
		authGroup.POST("/login", func(c *gin.Context) {
			var credentials struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}

			if err := c.BindJSON(&credentials); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
				return
			}

			if credentials.Username != cfg.API.Auth.User || credentials.Password != cfg.API.Auth.Pass {
				logger.Warn("Failed authentication attempt",
					logger.String("username", credentials.Username),
					logger.String("ip", c.ClientIP()))
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}

			tokenExpiration := 24 * time.Hour
			if cfg.API.Auth.JWTExpiration > 0 {
				tokenExpiration = time.Duration(cfg.API.Auth.JWTExpiration) * time.Second
			}

			token, err := jwt.GenerateToken(credentials.Username, cfg.API.Auth.JWTSecret, tokenExpiration)
			if err != nil {
				logger.Error("Failed to generate token", logger.String("error", err.Error()))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status":     "success",
				"token":      token,
				"expires_in": tokenExpiration.Seconds(),
			})
		})
	}
}
