package council

import (
	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/api/handlers"
)

// RegisterRoutes registers the conversation and council endpoints
func RegisterRoutes(engine *gin.Engine, conversationHandler *handlers.ConversationHandler) {
	conversations := engine.Group("/api/conversations")
	{
		conversations.POST("", conversationHandler.CreateConversation)
		conversations.GET("", conversationHandler.ListConversations)
		conversations.GET("/:id", conversationHandler.GetConversation)
		conversations.DELETE("/:id", conversationHandler.DeleteConversation)

		// Runs the full three-stage council on the posted question
		conversations.POST("/:id/messages", conversationHandler.SendMessage)
	}
}
