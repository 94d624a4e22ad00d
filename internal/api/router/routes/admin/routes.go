package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/api/handlers"
)

// RegisterRoutes registers the administrator-facing configuration endpoints
func RegisterRoutes(engine *gin.Engine, settingsHandler *handlers.SettingsHandler, modelsHandler *handlers.ModelsHandler) {
	engine.GET("/api/settings", settingsHandler.GetSettings)
	engine.PUT("/api/settings", settingsHandler.UpdateSettings)
	engine.GET("/api/models", modelsHandler.ListModels)
}
