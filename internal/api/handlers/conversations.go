package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/council"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
	"github.com/jbrusey/llm-council/internal/storage"
)

// ConversationHandler contains handlers for conversation endpoints.
type ConversationHandler struct {
	store  *storage.Store
	engine *council.Engine
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(store *storage.Store, engine *council.Engine) *ConversationHandler {
	return &ConversationHandler{
		store:  store,
		engine: engine,
	}
}

// CreateConversation handles requests to start a new conversation
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	conv, err := h.store.Create()
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// ListConversations handles requests to list conversation summaries
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	summaries, err := h.store.List()
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// GetConversation handles requests to fetch a full conversation
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	conv, err := h.store.Get(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// DeleteConversation handles requests to delete a conversation
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SendMessage appends the user's question, runs the full council on it, and
// appends the assistant result. The first message of a conversation also
// triggers title generation.
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	id := c.Param("id")
	conv, err := h.store.Get(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	isFirstMessage := len(conv.Messages) == 0

	if _, err := h.store.AppendMessage(id, storage.Message{
		Role:    "user",
		Content: req.Content,
	}); err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.engine.RunFull(c.Request.Context(), id, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}

	assistant := storage.Message{
		Role:    "assistant",
		Council: result,
	}
	if _, err := h.store.AppendMessage(id, assistant); err != nil {
		HandleError(c, err)
		return
	}

	title := conv.Title
	if isFirstMessage {
		title = h.engine.GenerateTitle(c.Request.Context(), id, req.Content)
		if err := h.store.SetTitle(id, title); err != nil {
			// The council result is already stored; a failed title update
			// should not fail the request.
			logger.Warn("Failed to persist conversation title",
				logger.String("conversation_id", id),
				logger.String("error", err.Error()))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": id,
		"title":           title,
		"message":         assistant,
	})
}
