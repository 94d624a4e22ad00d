// Package llm provides clients for the chat-completion providers the council
// can run on.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Supported providers
const (
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is a single model's answer, with the wall time the call took.
type Reply struct {
	Content   string
	Reasoning string
	Elapsed   float64 // seconds
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the given model and returns its reply.
	Chat(ctx context.Context, model string, messages []Message) (*Reply, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, model string, messages []Message) (*Reply, error)

// Chat implements Client.
func (f ClientFunc) Chat(ctx context.Context, model string, messages []Message) (*Reply, error) {
	return f(ctx, model, messages)
}

// Options carries provider endpoints and credentials for the factory.
type Options struct {
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OllamaChatURL     string
	LocalDefaultModel string
	Timeout           time.Duration
}

// New creates an LLM client for the given provider.
func New(provider string, opts Options) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOpenRouter:
		return NewOpenRouterClient(opts.OpenRouterAPIKey, opts.OpenRouterBaseURL, opts.Timeout)
	case ProviderOllama:
		return NewOllamaClient(opts.OllamaChatURL, opts.LocalDefaultModel, opts.Timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
