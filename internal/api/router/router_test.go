package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbrusey/llm-council/internal/pkg/config"
	"github.com/jbrusey/llm-council/internal/storage"
)

const councilAnswer = "Paris is the capital of France.\n\nFINAL RANKING:\n1. Response A\n2. Response B"

// newModelServer serves a fixed chat completion for every model call.
func newModelServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "test-model",
			"choices": [
				{
					"index": 0,
					"message": {"role": "assistant", "content": %q},
					"finish_reason": "stop"
				}
			]
		}`, councilAnswer)
	}))
}

func newTestConfig(t *testing.T, modelServerURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.GetDefaultConfig()
	cfg.Server.WebDir = ""
	cfg.Council.Models = []string{"alpha/model-a", "beta/model-b"}
	cfg.Council.ChairmanModel = "alpha/model-a"
	cfg.Council.TitleModel = "alpha/model-a"
	cfg.Council.OpenRouter.APIKey = "test-key"
	cfg.Council.OpenRouter.APIURL = modelServerURL
	cfg.Storage.DataDir = filepath.Join(dir, "conversations")
	cfg.Storage.SettingsPath = filepath.Join(dir, "settings.json")
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	builder, err := NewBuilder(cfg)
	require.NoError(t, err)
	builder.WithAllRoutes()

	ts := httptest.NewServer(builder.GetRouter())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestConversationLifecycle(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()
	ts := newTestServer(t, newTestConfig(t, modelServer.URL))

	var conv storage.Conversation
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/conversations", nil, &conv)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, conv.ID)
	assert.Equal(t, "New Conversation", conv.Title)
	assert.Empty(t, conv.Messages)

	var sendResp struct {
		ConversationID string          `json:"conversation_id"`
		Title          string          `json:"title"`
		Message        storage.Message `json:"message"`
	}
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/conversations/"+conv.ID+"/messages",
		map[string]string{"content": "What is the capital of France?"}, &sendResp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, conv.ID, sendResp.ConversationID)
	assert.NotEmpty(t, sendResp.Title)
	assert.Equal(t, "assistant", sendResp.Message.Role)

	result := sendResp.Message.Council
	require.NotNil(t, result)
	require.Len(t, result.Stage1, 2)
	assert.Equal(t, "alpha/model-a", result.Stage1[0].Model)
	assert.Equal(t, councilAnswer, result.Stage1[0].Response)
	require.NotNil(t, result.Stage1[0].ResponseTime)
	require.Len(t, result.Stage2, 2)
	assert.Equal(t, []string{"Response A", "Response B"}, result.Stage2[0].ParsedRanking)
	assert.Equal(t, councilAnswer, result.Stage3.Response)
	assert.Equal(t, "alpha/model-a", result.Stage3.Model)

	// Both rankers put Response A first, so its model averages rank 1.
	require.Len(t, result.Metadata.AggregateRankings, 2)
	assert.Equal(t, result.Metadata.LabelToModel["Response A"], result.Metadata.AggregateRankings[0].Model)
	assert.Equal(t, 1.0, result.Metadata.AggregateRankings[0].AverageRank)
	assert.Equal(t, 2.0, result.Metadata.AggregateRankings[1].AverageRank)

	var fetched storage.Conversation
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/conversations/"+conv.ID, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sendResp.Title, fetched.Title)
	require.Len(t, fetched.Messages, 2)
	assert.Equal(t, "user", fetched.Messages[0].Role)
	require.NotNil(t, fetched.Messages[1].Council)

	var listResp struct {
		Conversations []storage.Summary `json:"conversations"`
	}
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/conversations", nil, &listResp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listResp.Conversations, 1)
	assert.Equal(t, conv.ID, listResp.Conversations[0].ID)
	assert.Equal(t, 2, listResp.Conversations[0].MessageCount)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/conversations/"+conv.ID, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/conversations/"+conv.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSendMessageValidation(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()
	ts := newTestServer(t, newTestConfig(t, modelServer.URL))

	var conv storage.Conversation
	doJSON(t, http.MethodPost, ts.URL+"/api/conversations", nil, &conv)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/conversations/"+conv.ID+"/messages",
		map[string]string{"content": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/conversations/no-such-id/messages",
		map[string]string{"content": "hello"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSettingsEndpoints(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()
	ts := newTestServer(t, newTestConfig(t, modelServer.URL))

	var current map[string]any
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/settings", nil, &current)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "openrouter", current["llm_provider"])

	var updated map[string]any
	resp = doJSON(t, http.MethodPut, ts.URL+"/api/settings",
		map[string]any{
			"llm_provider":   "OLLAMA",
			"chairman_model": "gamma/model-c",
		}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ollama", updated["llm_provider"])
	assert.Equal(t, "gamma/model-c", updated["chairman_model"])

	// Absent fields keep their values across the partial update.
	models, ok := updated["council_models"].([]any)
	require.True(t, ok)
	assert.Len(t, models, 2)
}

func TestListModelsOpenRouter(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()
	ts := newTestServer(t, newTestConfig(t, modelServer.URL))

	var out struct {
		Provider string `json:"provider"`
		Models   []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/models", nil, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "openrouter", out.Provider)

	// Council members plus chairman and title models, deduplicated.
	names := make([]string, len(out.Models))
	for i, m := range out.Models {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"alpha/model-a", "beta/model-b"}, names)
}

func TestHealthEndpoint(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()
	ts := newTestServer(t, newTestConfig(t, modelServer.URL))

	var out map[string]any
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/health", nil, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", out["status"])
	assert.Equal(t, "llm-council", out["app"])
	assert.Equal(t, float64(2), out["council_size"])
}

func TestAuthProtectsAPI(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()

	cfg := newTestConfig(t, modelServer.URL)
	cfg.API.Auth.Enabled = true
	cfg.API.Auth.User = "admin"
	cfg.API.Auth.Pass = "secret"
	cfg.API.Auth.JWTSecret = "test-jwt-secret"
	ts := newTestServer(t, cfg)

	// Health stays open, the rest of the API does not.
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/conversations", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login",
		map[string]string{"username": "admin", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login",
		map[string]string{"username": "admin", "password": "secret"}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/conversations", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	authed, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer authed.Body.Close()
	assert.Equal(t, http.StatusOK, authed.StatusCode)
}
