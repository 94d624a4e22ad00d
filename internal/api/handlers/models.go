package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/llm"
	"github.com/jbrusey/llm-council/internal/settings"
)

// ModelsHandler lists the models available under the active provider, so the
// admin UI can offer them for council membership.
type ModelsHandler struct {
	store *settings.Store
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(store *settings.Store) *ModelsHandler {
	return &ModelsHandler{store: store}
}

// ListModels handles requests to enumerate selectable models
func (h *ModelsHandler) ListModels(c *gin.Context) {
	st := h.store.Get()

	if st.LLMProvider == llm.ProviderOllama {
		client, err := llm.NewOllamaClient(st.OllamaAPIURL, st.LocalDefaultModel, time.Minute)
		if err != nil {
			HandleError(c, err)
			return
		}
		models, err := client.ListModels(c.Request.Context())
		if err != nil {
			HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"provider": st.LLMProvider,
			"models":   models,
		})
		return
	}

	// OpenRouter has no cheap enumeration endpoint worth proxying; the
	// selectable set is whatever the settings already reference.
	seen := make(map[string]bool)
	models := make([]llm.ModelInfo, 0, len(st.CouncilModels)+2)
	for _, name := range append(append([]string{}, st.CouncilModels...), st.ChairmanModel, st.TitleModel) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		models = append(models, llm.ModelInfo{Name: name})
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": st.LLMProvider,
		"models":   models,
	})
}
