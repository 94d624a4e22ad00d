package websocket

import (
	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/websocket"
)

// RegisterWebSocketRoutes registers the websocket routes
func RegisterWebSocketRoutes(router *gin.Engine, registry *websocket.Registry) {
	// Per-conversation council progress stream
	router.GET("/ws/council/:id", func(c *gin.Context) {
		handler := registry.HandlerFor(c.Param("id"))
		handler.ServeHTTP(c.Writer, c.Request)
	})
}
