package llm

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jbrusey/llm-council/internal/pkg/logger"
)

// QueryParallel sends the same messages to every model concurrently. A model
// that fails maps to a nil reply; one bad model never fails the batch.
func QueryParallel(ctx context.Context, client Client, models []string, messages []Message) map[string]*Reply {
	replies := make([]*Reply, len(models))

	g, ctx := errgroup.WithContext(ctx)
	for i, model := range models {
		g.Go(func() error {
			reply, err := client.Chat(ctx, model, messages)
			if err != nil {
				logger.Warn("Model query failed",
					logger.String("model", model),
					logger.String("error", err.Error()))
				return nil
			}
			replies[i] = reply
			return nil
		})
	}
	// Goroutines only ever return nil; Wait is for completion, not errors.
	_ = g.Wait()

	results := make(map[string]*Reply, len(models))
	for i, model := range models {
		results[model] = replies[i]
	}
	return results
}
