package router

import (
	"fmt"

	"github.com/jbrusey/llm-council/internal/api/handlers"
	"github.com/jbrusey/llm-council/internal/council"
	"github.com/jbrusey/llm-council/internal/pkg/config"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
	"github.com/jbrusey/llm-council/internal/settings"
	"github.com/jbrusey/llm-council/internal/storage"
	"github.com/jbrusey/llm-council/internal/websocket"
)

// Builder wires the stores, council engine, and handlers into a router and
// manages their lifecycle.
type Builder struct {
	router *Router

	settingsStore *settings.Store
	convStore     *storage.Store
	engine        *council.Engine
}

// NewBuilder creates a new router builder
func NewBuilder(cfg *config.Config) (*Builder, error) {
	settingsStore := settings.NewStore(cfg)

	convStore, err := storage.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation store: %w", err)
	}

	// The WebSocket registry doubles as the council's progress notifier.
	wsRegistry := websocket.GetRegistry()
	engine := council.NewEngine(cfg, settingsStore, wsRegistry)

	conversationHandler := handlers.NewConversationHandler(convStore, engine)
	settingsHandler := handlers.NewSettingsHandler(settingsStore)
	modelsHandler := handlers.NewModelsHandler(settingsStore)
	healthHandler := handlers.NewHealthHandler(cfg, settingsStore)

	return &Builder{
		router:        New(cfg, conversationHandler, settingsHandler, modelsHandler, healthHandler, wsRegistry),
		settingsStore: settingsStore,
		convStore:     convStore,
		engine:        engine,
	}, nil
}

// WithAllRoutes initializes the router with middleware and all routes
func (b *Builder) WithAllRoutes() *Builder {
	b.router.Initialize()
	return b
}

// GetRouter returns the underlying router
func (b *Builder) GetRouter() *Router {
	return b.router
}

// Start starts the HTTP server
func (b *Builder) Start() {
	b.router.Start()
}

// Shutdown releases resources on service stop
func (b *Builder) Shutdown() {
	// In-flight council runs are bound to request contexts and end with
	// their connections; the stores have no open handles to release.
	logger.Info("Router shut down")
}
