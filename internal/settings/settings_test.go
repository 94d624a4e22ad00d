package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbrusey/llm-council/internal/pkg/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.GetDefaultConfig()
	cfg.Storage.SettingsPath = filepath.Join(t.TempDir(), "settings.json")
	cfg.Council.Provider = "openrouter"
	cfg.Council.Models = []string{"model-a", "model-b"}
	cfg.Council.ChairmanModel = "model-a"
	return NewStore(cfg)
}

func TestGetReturnsDefaultsWhenFileMissing(t *testing.T) {
	store := newTestStore(t)

	got := store.Get()
	assert.Equal(t, "openrouter", got.LLMProvider)
	assert.Equal(t, []string{"model-a", "model-b"}, got.CouncilModels)
	assert.Equal(t, DefaultRankingPrompt, got.RankingPrompt)
}

func TestUpdatePersistsAndSkipsNilFields(t *testing.T) {
	store := newTestStore(t)

	provider := "OLLAMA"
	chairman := "model-b"
	updated, err := store.Update(Update{
		LLMProvider:   &provider,
		ChairmanModel: &chairman,
	})
	require.NoError(t, err)

	// Provider is normalized to lower case; untouched fields keep defaults.
	assert.Equal(t, "ollama", updated.LLMProvider)
	assert.Equal(t, "model-b", updated.ChairmanModel)
	assert.Equal(t, []string{"model-a", "model-b"}, updated.CouncilModels)

	// The document on disk reflects the update.
	data, err := os.ReadFile(store.path)
	require.NoError(t, err)
	var onDisk Settings
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, "ollama", onDisk.LLMProvider)
	assert.Equal(t, DefaultTitlePrompt, onDisk.TitlePrompt)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.path), 0755))
	require.NoError(t, os.WriteFile(store.path, []byte(`{"chairman_model":"model-x"}`), 0644))

	got := store.Get()
	assert.Equal(t, "model-x", got.ChairmanModel)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "openrouter", got.LLMProvider)
	assert.Equal(t, DefaultChairmanPrompt, got.ChairmanPrompt)
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.path), 0755))
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0644))

	got := store.Get()
	assert.Equal(t, "openrouter", got.LLMProvider)
	assert.Equal(t, []string{"model-a", "model-b"}, got.CouncilModels)
}

func TestUpdateReplacesCouncilModels(t *testing.T) {
	store := newTestStore(t)

	models := []string{"model-c"}
	updated, err := store.Update(Update{CouncilModels: &models})
	require.NoError(t, err)
	assert.Equal(t, []string{"model-c"}, updated.CouncilModels)

	// A fresh store reading the same file sees the persisted list.
	fresh := &Store{path: store.path, defaults: store.defaults}
	assert.Equal(t, []string{"model-c"}, fresh.Get().CouncilModels)
}
