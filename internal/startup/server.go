package startup

import (
	"os"

	"github.com/jbrusey/llm-council/internal/api/router"
	"github.com/jbrusey/llm-council/internal/app"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
)

// StartServer initializes and starts the HTTP server
func StartServer(application *app.Application) *router.Builder {
	cfg := application.GetConfig()

	builder, err := router.NewBuilder(cfg)
	if err != nil {
		logger.Error("Failed to build server", logger.String("error", err.Error()))
		os.Exit(1)
	}
	builder.WithAllRoutes()

	// Start HTTP server in a goroutine
	go builder.Start()

	return builder
}
