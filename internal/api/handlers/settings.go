package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/pkg/logger"
	"github.com/jbrusey/llm-council/internal/settings"
)

// SettingsHandler contains handlers for the runtime settings endpoints.
type SettingsHandler struct {
	store *settings.Store
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// GetSettings handles requests to read the current settings document
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// UpdateSettings applies a partial settings update. Absent fields keep their
// current values.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var update settings.Update
	if err := c.BindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	updated, err := h.store.Update(update)
	if err != nil {
		HandleError(c, err)
		return
	}

	logger.Info("Settings updated",
		logger.String("provider", updated.LLMProvider),
		logger.Int("council_size", len(updated.CouncilModels)))
	c.JSON(http.StatusOK, updated)
}
