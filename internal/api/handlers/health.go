package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"github.com/jbrusey/llm-council/internal/pkg/config"
	"github.com/jbrusey/llm-council/internal/settings"
)

// HealthHandler reports service liveness plus a small host snapshot, so a
// deployment dashboard can see at a glance whether the box is struggling.
type HealthHandler struct {
	config    *config.Config
	store     *settings.Store
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config, store *settings.Store) *HealthHandler {
	return &HealthHandler{
		config:    cfg,
		store:     store,
		startedAt: time.Now(),
	}
}

// GetHealth handles requests for the health endpoint
func (h *HealthHandler) GetHealth(c *gin.Context) {
	st := h.store.Get()

	payload := gin.H{
		"status":         "healthy",
		"app":            h.config.AppName,
		"provider":       st.LLMProvider,
		"council_size":   len(st.CouncilModels),
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	}

	// Host details are best effort; the service is healthy either way.
	if vm, err := mem.VirtualMemory(); err == nil {
		payload["host_memory_used_percent"] = vm.UsedPercent
	}
	if uptime, err := host.Uptime(); err == nil {
		payload["host_uptime_seconds"] = uptime
	}

	c.JSON(http.StatusOK, payload)
}
