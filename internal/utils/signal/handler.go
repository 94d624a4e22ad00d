package signal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jbrusey/llm-council/internal/api/router"
	"github.com/jbrusey/llm-council/internal/app"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
)

var (
	cleanupMu    sync.Mutex
	cleanupFuncs []func()
)

// RegisterCleanupFunc registers a function to run before the process exits
// on a termination signal. Functions run in registration order.
func RegisterCleanupFunc(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanupFuncs = append(cleanupFuncs, fn)
}

func runCleanupFuncs() {
	cleanupMu.Lock()
	funcs := make([]func(), len(cleanupFuncs))
	copy(funcs, cleanupFuncs)
	cleanupMu.Unlock()

	for _, fn := range funcs {
		fn()
	}
}

// HandleSignals sets up signal handling for graceful shutdown
func HandleSignals(application *app.Application, builder *router.Builder) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		sig := <-sigChan
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			logger.Info("Received termination signal, shutting down...",
				logger.String("signal", sig.String()))

			builder.Shutdown()
			application.Shutdown()
			runCleanupFuncs()
			os.Exit(0)
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal, ignoring...")
		}
	}
}
