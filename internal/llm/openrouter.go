package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

const defaultRequestTimeout = 120 * time.Second

// OpenRouterClient implements the Client interface against OpenRouter's
// OpenAI-compatible chat completions API.
type OpenRouterClient struct {
	client  openai.Client
	timeout time.Duration
}

// NewOpenRouterClient creates a new OpenRouter client.
func NewOpenRouterClient(apiKey, baseURL string, timeout time.Duration) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, errors.New("openrouter api key is required")
	}
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenRouterClient{
		client:  client,
		timeout: timeout,
	}, nil
}

// Chat sends messages to the given model and returns its reply.
func (c *OpenRouterClient) Chat(ctx context.Context, model string, messages []Message) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			openaiMessages[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			openaiMessages[i] = openai.AssistantMessage(msg.Content)
		default:
			openaiMessages[i] = openai.UserMessage(msg.Content)
		}
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    model,
		Messages: openaiMessages,
	})
	if err != nil {
		return nil, fmt.Errorf("openrouter chat completion for %s: %w", model, err)
	}
	elapsed := time.Since(start).Seconds()

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openrouter returned no choices for %s", model)
	}

	msg := resp.Choices[0].Message
	reply := &Reply{
		Content: msg.Content,
		Elapsed: elapsed,
	}

	// OpenRouter adds a reasoning field the OpenAI schema does not carry.
	if f, ok := msg.JSON.ExtraFields["reasoning"]; ok && f.Valid() {
		var reasoning string
		if err := json.Unmarshal([]byte(f.Raw()), &reasoning); err == nil {
			reply.Reasoning = reasoning
		}
	}

	return reply, nil
}
