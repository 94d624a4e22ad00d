package router

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jbrusey/llm-council/internal/api/handlers"
	"github.com/jbrusey/llm-council/internal/api/middleware"
	"github.com/jbrusey/llm-council/internal/api/router/routes/admin"
	"github.com/jbrusey/llm-council/internal/api/router/routes/auth"
	councilroutes "github.com/jbrusey/llm-council/internal/api/router/routes/council"
	wsroutes "github.com/jbrusey/llm-council/internal/api/router/routes/websocket"
	"github.com/jbrusey/llm-council/internal/pkg/config"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
	"github.com/jbrusey/llm-council/internal/websocket"
)

// Router encapsulates the HTTP router functionality
type Router struct {
	config *config.Config
	engine *gin.Engine

	conversationHandler *handlers.ConversationHandler
	settingsHandler     *handlers.SettingsHandler
	modelsHandler       *handlers.ModelsHandler
	healthHandler       *handlers.HealthHandler
	wsRegistry          *websocket.Registry
}

// New creates a new router instance with the given configuration and handlers
func New(cfg *config.Config, conversationHandler *handlers.ConversationHandler, settingsHandler *handlers.SettingsHandler, modelsHandler *handlers.ModelsHandler, healthHandler *handlers.HealthHandler, wsRegistry *websocket.Registry) *Router {
	if cfg.Logs.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		config:              cfg,
		engine:              gin.New(),
		conversationHandler: conversationHandler,
		settingsHandler:     settingsHandler,
		modelsHandler:       modelsHandler,
		healthHandler:       healthHandler,
		wsRegistry:          wsRegistry,
	}
}

// Initialize sets up the router with middlewares and routes
func (r *Router) Initialize() *Router {
	r.engine.Use(gin.Recovery())
	r.engine.Use(LoggerMiddleware())

	if r.config.API.CORS.Enabled {
		r.engine.Use(corsMiddleware(r.config))
	}
	if r.config.API.Auth.Enabled {
		r.engine.Use(middleware.JWTAuthMiddleware(r.config.API.Auth.JWTSecret))
	}

	r.registerAPIRoutes()
	r.registerWebSocketRoutes()
	r.registerRootEndpoints()

	if webDir := r.config.Server.WebDir; webDir != "" {
		// The built front-end is served alongside the API
		r.engine.Static("/app", webDir)
	}

	for _, route := range r.engine.Routes() {
		logger.Debug("Registered route",
			logger.String("method", route.Method),
			logger.String("path", route.Path))
	}

	return r
}

// registerAPIRoutes registers all API-specific routes
func (r *Router) registerAPIRoutes() {
	if r.config.API.Auth.Enabled {
		auth.RegisterRoutes(r.engine, r.config)
	}
	councilroutes.RegisterRoutes(r.engine, r.conversationHandler)
	admin.RegisterRoutes(r.engine, r.settingsHandler, r.modelsHandler)
}

// registerWebSocketRoutes registers all WebSocket routes
func (r *Router) registerWebSocketRoutes() {
	wsroutes.RegisterWebSocketRoutes(r.engine, r.wsRegistry)
}

// registerRootEndpoints provides the liveness endpoints
func (r *Router) registerRootEndpoints() {
	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"app":    r.config.AppName,
		})
	})

	r.engine.GET("/api/health", r.healthHandler.GetHealth)
}

// corsMiddleware builds the CORS layer from configuration
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(cfg.API.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.API.CORS.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	if len(cfg.API.CORS.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.API.CORS.AllowedMethods
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return cors.New(corsCfg)
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

// LoggerMiddleware creates a middleware for logging HTTP requests
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for WebSocket connections
		if c.Request.Header.Get("Upgrade") == "websocket" {
			c.Next()
			return
		}

		c.Next()

		logger.Info("HTTP Request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
		)
	}
}

// Start starts the HTTP server
func (r *Router) Start() {
	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	logger.Info("Starting HTTP server", logger.String("address", addr))

	if err := r.engine.Run(addr); err != nil {
		logger.Error("Failed to start HTTP server", logger.String("error", err.Error()))
	}
}
