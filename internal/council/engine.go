package council

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jbrusey/llm-council/internal/llm"
	"github.com/jbrusey/llm-council/internal/pkg/config"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
	"github.com/jbrusey/llm-council/internal/pkg/timefmt"
	"github.com/jbrusey/llm-council/internal/settings"
)

const (
	fallbackTitle       = "New Conversation"
	maxTitleLength      = 50
	synthesisErrorReply = "Error: Unable to generate final synthesis."
	allFailedReply      = "All models failed to respond. Please try again."
)

// Engine runs the council workflow against the currently configured provider
// and models.
type Engine struct {
	cfg      *config.Config
	settings *settings.Store
	notifier Notifier

	// newClient is swappable in tests
	newClient func(provider string, opts llm.Options) (llm.Client, error)
}

// NewEngine creates a council engine. notifier may be nil if no progress
// streaming is wanted.
func NewEngine(cfg *config.Config, store *settings.Store, notifier Notifier) *Engine {
	return &Engine{
		cfg:       cfg,
		settings:  store,
		notifier:  notifier,
		newClient: llm.New,
	}
}

// RunFull executes the complete three-stage council process for a user query.
// The returned result is always usable by the front-end; total model failure
// is reported inside it rather than as an error.
func (e *Engine) RunFull(ctx context.Context, conversationID, userQuery string) (*Result, error) {
	st := e.settings.Get()
	client, err := e.clientFor(st)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	logger.Info("Starting council run",
		logger.String("conversation_id", conversationID),
		logger.String("provider", st.LLMProvider),
		logger.Int("council_size", len(st.CouncilModels)))

	e.notify(conversationID, Event{Type: EventStageStarted, Stage: 1})
	stage1 := e.stage1(ctx, conversationID, client, st, userQuery)
	e.notify(conversationID, Event{Type: EventStageCompleted, Stage: 1})

	if len(stage1) == 0 {
		logger.Error("Council run failed: no models responded",
			logger.String("conversation_id", conversationID))
		return &Result{
			Stage1: []Stage1Result{},
			Stage2: []Stage2Result{},
			Stage3: Stage3Result{Model: "error", Response: allFailedReply},
			Metadata: Metadata{
				LabelToModel:      map[string]string{},
				AggregateRankings: []AggregateRank{},
			},
		}, nil
	}

	e.notify(conversationID, Event{Type: EventStageStarted, Stage: 2})
	stage2, labelToModel := e.stage2(ctx, conversationID, client, st, userQuery, stage1)
	e.notify(conversationID, Event{Type: EventStageCompleted, Stage: 2})

	aggregate := AggregateRankings(stage2, labelToModel)

	e.notify(conversationID, Event{Type: EventStageStarted, Stage: 3})
	stage3 := e.stage3(ctx, conversationID, client, st, userQuery, stage1, stage2)
	e.notify(conversationID, Event{Type: EventStageCompleted, Stage: 3})

	e.notify(conversationID, Event{Type: EventCouncilCompleted})
	logger.Info("Council run completed",
		logger.String("conversation_id", conversationID),
		logger.String("total_time", timefmt.FormatSeconds(time.Since(start).Seconds())),
		logger.Int("stage1_responses", len(stage1)),
		logger.Int("stage2_rankings", len(stage2)))

	return &Result{
		Stage1: stage1,
		Stage2: stage2,
		Stage3: stage3,
		Metadata: Metadata{
			LabelToModel:      labelToModel,
			AggregateRankings: aggregate,
		},
	}, nil
}

// stage1 collects individual responses from all council models in parallel.
func (e *Engine) stage1(ctx context.Context, conversationID string, client llm.Client, st settings.Settings, userQuery string) []Stage1Result {
	messages := []llm.Message{{Role: "user", Content: userQuery}}
	replies := llm.QueryParallel(ctx, e.instrumented(client, conversationID, 1), st.CouncilModels, messages)

	results := make([]Stage1Result, 0, len(st.CouncilModels))
	for _, model := range st.CouncilModels {
		reply := replies[model]
		if reply == nil {
			continue
		}
		elapsed := reply.Elapsed
		results = append(results, Stage1Result{
			Model:        model,
			Response:     reply.Content,
			ResponseTime: &elapsed,
		})
	}
	return results
}

// stage2 has every council model rank the anonymized stage-1 answers.
// Returns the rankings and the label-to-model mapping used to anonymize.
func (e *Engine) stage2(ctx context.Context, conversationID string, client llm.Client, st settings.Settings, userQuery string, stage1 []Stage1Result) ([]Stage2Result, map[string]string) {
	labelToModel := make(map[string]string, len(stage1))
	blocks := make([]string, len(stage1))
	for i, result := range stage1 {
		label := fmt.Sprintf("Response %c", 'A'+i)
		labelToModel[label] = result.Model
		blocks[i] = fmt.Sprintf("%s:\n%s", label, result.Response)
	}

	prompt := RenderPrompt(st.RankingPrompt, map[string]string{
		"user_query":     userQuery,
		"responses_text": strings.Join(blocks, "\n\n"),
	})
	messages := []llm.Message{{Role: "user", Content: prompt}}
	replies := llm.QueryParallel(ctx, e.instrumented(client, conversationID, 2), st.CouncilModels, messages)

	results := make([]Stage2Result, 0, len(st.CouncilModels))
	for _, model := range st.CouncilModels {
		reply := replies[model]
		if reply == nil {
			continue
		}
		elapsed := reply.Elapsed
		results = append(results, Stage2Result{
			Model:         model,
			Ranking:       reply.Content,
			ParsedRanking: ParseRanking(reply.Content),
			ResponseTime:  &elapsed,
		})
	}
	return results, labelToModel
}

// stage3 asks the chairman model to synthesize the final answer.
func (e *Engine) stage3(ctx context.Context, conversationID string, client llm.Client, st settings.Settings, userQuery string, stage1 []Stage1Result, stage2 []Stage2Result) Stage3Result {
	stage1Blocks := make([]string, len(stage1))
	for i, r := range stage1 {
		stage1Blocks[i] = fmt.Sprintf("Model: %s\nResponse: %s", r.Model, r.Response)
	}
	stage2Blocks := make([]string, len(stage2))
	for i, r := range stage2 {
		stage2Blocks[i] = fmt.Sprintf("Model: %s\nRanking: %s", r.Model, r.Ranking)
	}

	prompt := RenderPrompt(st.ChairmanPrompt, map[string]string{
		"user_query":  userQuery,
		"stage1_text": strings.Join(stage1Blocks, "\n\n"),
		"stage2_text": strings.Join(stage2Blocks, "\n\n"),
	})
	messages := []llm.Message{{Role: "user", Content: prompt}}

	reply, modelUsed := e.queryWithFallback(ctx, client, st, st.ChairmanModel, messages)
	if reply == nil {
		return Stage3Result{Model: modelUsed, Response: synthesisErrorReply}
	}

	e.notify(conversationID, Event{
		Type:          EventModelCompleted,
		Stage:         3,
		Model:         modelUsed,
		ResponseTime:  &reply.Elapsed,
		FormattedTime: timefmt.FormatSecondsPtr(&reply.Elapsed),
	})

	elapsed := reply.Elapsed
	return Stage3Result{
		Model:        modelUsed,
		Response:     reply.Content,
		ResponseTime: &elapsed,
	}
}

// GenerateTitle produces a short conversation title from the first user
// message. It never fails: any problem yields the generic fallback title.
func (e *Engine) GenerateTitle(ctx context.Context, conversationID, userQuery string) string {
	st := e.settings.Get()
	client, err := e.clientFor(st)
	if err != nil {
		logger.Warn("Title generation skipped", logger.String("error", err.Error()))
		return fallbackTitle
	}

	timeout := time.Duration(e.cfg.Council.TitleTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := RenderPrompt(st.TitlePrompt, map[string]string{"user_query": userQuery})
	messages := []llm.Message{{Role: "user", Content: prompt}}

	reply, _ := e.queryWithFallback(ctx, client, st, st.TitleModel, messages)
	if reply == nil {
		return fallbackTitle
	}

	title := cleanTitle(reply.Content)
	if title == "" {
		title = fallbackTitle
	}

	e.notify(conversationID, Event{Type: EventTitleGenerated, Title: title})
	return title
}

// queryWithFallback queries the requested model and, when running on Ollama,
// retries once with the configured local default model. Returns the reply (or
// nil) and the model that actually produced it.
func (e *Engine) queryWithFallback(ctx context.Context, client llm.Client, st settings.Settings, model string, messages []llm.Message) (*llm.Reply, string) {
	reply, err := client.Chat(ctx, model, messages)
	if err == nil {
		return reply, model
	}
	logger.Warn("Model query failed",
		logger.String("model", model),
		logger.String("error", err.Error()))

	if st.LLMProvider == llm.ProviderOllama && model != st.LocalDefaultModel {
		reply, err = client.Chat(ctx, st.LocalDefaultModel, messages)
		if err == nil {
			return reply, st.LocalDefaultModel
		}
		logger.Warn("Fallback model query failed",
			logger.String("model", st.LocalDefaultModel),
			logger.String("error", err.Error()))
	}
	return nil, model
}

// clientFor builds a provider client from the current settings snapshot.
func (e *Engine) clientFor(st settings.Settings) (llm.Client, error) {
	return e.newClient(st.LLMProvider, llm.Options{
		OpenRouterAPIKey:  e.cfg.Council.OpenRouter.APIKey,
		OpenRouterBaseURL: e.cfg.Council.OpenRouter.APIURL,
		OllamaChatURL:     st.OllamaAPIURL,
		LocalDefaultModel: st.LocalDefaultModel,
		Timeout:           time.Duration(e.cfg.Council.RequestTimeout) * time.Second,
	})
}

// instrumented wraps a client so every successful reply emits a progress
// event carrying both the raw and display-formatted response time.
func (e *Engine) instrumented(client llm.Client, conversationID string, stage int) llm.Client {
	if e.notifier == nil {
		return client
	}
	return llm.ClientFunc(func(ctx context.Context, model string, messages []llm.Message) (*llm.Reply, error) {
		reply, err := client.Chat(ctx, model, messages)
		if err == nil && reply != nil {
			elapsed := reply.Elapsed
			e.notify(conversationID, Event{
				Type:          EventModelCompleted,
				Stage:         stage,
				Model:         model,
				ResponseTime:  &elapsed,
				FormattedTime: timefmt.FormatSecondsPtr(&elapsed),
			})
		}
		return reply, err
	})
}

func (e *Engine) notify(conversationID string, event Event) {
	if e.notifier != nil {
		e.notifier.Notify(conversationID, event)
	}
}

// cleanTitle strips quotes and whitespace and truncates overlong titles.
func cleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)

	runes := []rune(title)
	if len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength-3]) + "..."
	}
	return title
}
