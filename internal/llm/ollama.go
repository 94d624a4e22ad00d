package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaChatURL = "http://localhost:11434/api/chat"

// OllamaClient implements the Client interface using a local Ollama server.
type OllamaClient struct {
	llm        *ollama.LLM
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewOllamaClient creates a new Ollama client. The chat URL is what operators
// configure (matching Ollama's own /api/chat endpoint); the server base URL is
// derived from it.
func NewOllamaClient(chatURL, defaultModel string, timeout time.Duration) (*OllamaClient, error) {
	if chatURL == "" {
		chatURL = defaultOllamaChatURL
	}
	if defaultModel == "" {
		defaultModel = "llama3.2"
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	baseURL := BaseURLFromChatURL(chatURL)

	client, err := ollama.New(
		ollama.WithModel(defaultModel),
		ollama.WithServerURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}

	return &OllamaClient{
		llm:        client,
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// BaseURLFromChatURL strips the chat endpoint path from a configured Ollama
// chat URL, leaving the server base URL.
func BaseURLFromChatURL(chatURL string) string {
	if idx := strings.Index(chatURL, "/api/chat"); idx >= 0 {
		return chatURL[:idx]
	}
	if strings.HasSuffix(chatURL, "/api/") {
		return strings.TrimSuffix(chatURL, "/api/")
	}
	if strings.HasSuffix(chatURL, "/api") {
		return strings.TrimSuffix(chatURL, "/api")
	}
	return strings.TrimRight(chatURL, "/")
}

// Chat sends messages to the given model and returns its reply.
func (c *OllamaClient) Chat(ctx context.Context, model string, messages []Message) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.llm.GenerateContent(ctx, toLangChainMessages(messages), llms.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("ollama chat for %s: %w", model, err)
	}
	elapsed := time.Since(start).Seconds()

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("ollama returned no choices for %s", model)
	}

	choice := resp.Choices[0]
	return &Reply{
		Content:   choice.Content,
		Reasoning: choice.ReasoningContent,
		Elapsed:   elapsed,
	}, nil
}

// ModelInfo describes a model installed on the Ollama server.
type ModelInfo struct {
	Name       string `json:"name"`
	ModifiedAt string `json:"modified_at,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

// ListModels returns the models available on the Ollama server via /api/tags.
func (c *OllamaClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("building ollama tags request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing ollama models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama tags request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Models []ModelInfo `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing ollama tags response: %w", err)
	}

	models := make([]ModelInfo, 0, len(payload.Models))
	for _, m := range payload.Models {
		if m.Name != "" {
			models = append(models, m)
		}
	}
	return models, nil
}

func toLangChainMessages(messages []Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		role := llms.ChatMessageTypeHuman
		switch strings.ToLower(msg.Role) {
		case "system":
			role = llms.ChatMessageTypeSystem
		case "assistant":
			role = llms.ChatMessageTypeAI
		}
		result = append(result, llms.TextParts(role, msg.Content))
	}
	return result
}
