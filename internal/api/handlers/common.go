package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/pkg/logger"
	"github.com/jbrusey/llm-council/internal/storage"
)

// HandleError provides a consistent way to handle errors in route handlers
func HandleError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "conversation not found",
		})
		return
	}

	logger.Error("API error",
		logger.String("path", c.Request.URL.Path),
		logger.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
	})
}
