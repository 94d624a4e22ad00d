// Package settings manages the runtime-editable configuration of the council:
// provider, model lists, and prompt templates. It is the administrator-facing
// counterpart to the static YAML config.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jbrusey/llm-council/internal/pkg/config"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
)

// Settings is the runtime settings document, persisted as JSON and served to
// the admin front-end verbatim.
type Settings struct {
	LLMProvider       string   `json:"llm_provider"`
	CouncilModels     []string `json:"council_models"`
	ChairmanModel     string   `json:"chairman_model"`
	TitleModel        string   `json:"title_model"`
	OllamaAPIURL      string   `json:"ollama_api_url"`
	LocalDefaultModel string   `json:"local_default_model"`
	RankingPrompt     string   `json:"ranking_prompt"`
	ChairmanPrompt    string   `json:"chairman_prompt"`
	TitlePrompt       string   `json:"title_prompt"`
}

// Update carries a partial settings change; nil fields are left untouched.
type Update struct {
	LLMProvider       *string   `json:"llm_provider"`
	CouncilModels     *[]string `json:"council_models"`
	ChairmanModel     *string   `json:"chairman_model"`
	TitleModel        *string   `json:"title_model"`
	OllamaAPIURL      *string   `json:"ollama_api_url"`
	LocalDefaultModel *string   `json:"local_default_model"`
	RankingPrompt     *string   `json:"ranking_prompt"`
	ChairmanPrompt    *string   `json:"chairman_prompt"`
	TitlePrompt       *string   `json:"title_prompt"`
}

// Store provides cached, persisted access to the settings document.
type Store struct {
	mu       sync.Mutex
	path     string
	defaults Settings
	cached   *Settings
}

// NewStore creates a settings store with defaults derived from the static
// configuration. Nothing is read from disk until the first Get.
func NewStore(cfg *config.Config) *Store {
	return &Store{
		path: cfg.Storage.SettingsPath,
		defaults: Settings{
			LLMProvider:       strings.ToLower(cfg.Council.Provider),
			CouncilModels:     append([]string(nil), cfg.Council.Models...),
			ChairmanModel:     cfg.Council.ChairmanModel,
			TitleModel:        cfg.Council.TitleModel,
			OllamaAPIURL:      cfg.Council.Ollama.APIURL,
			LocalDefaultModel: cfg.Council.LocalDefaultModel,
			RankingPrompt:     DefaultRankingPrompt,
			ChairmanPrompt:    DefaultChairmanPrompt,
			TitlePrompt:       DefaultTitlePrompt,
		},
	}
}

// Get returns the current settings, loading them from disk on first use.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil {
		loaded := s.loadFromFile()
		s.cached = &loaded
	}
	return s.cached.clone()
}

// Update applies a partial update, persists the result, and returns it.
func (s *Store) Update(u Update) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil {
		loaded := s.loadFromFile()
		s.cached = &loaded
	}

	next := s.cached.clone()
	if u.LLMProvider != nil {
		next.LLMProvider = strings.ToLower(*u.LLMProvider)
	}
	if u.CouncilModels != nil {
		next.CouncilModels = append([]string(nil), (*u.CouncilModels)...)
	}
	if u.ChairmanModel != nil {
		next.ChairmanModel = *u.ChairmanModel
	}
	if u.TitleModel != nil {
		next.TitleModel = *u.TitleModel
	}
	if u.OllamaAPIURL != nil {
		next.OllamaAPIURL = *u.OllamaAPIURL
	}
	if u.LocalDefaultModel != nil {
		next.LocalDefaultModel = *u.LocalDefaultModel
	}
	if u.RankingPrompt != nil {
		next.RankingPrompt = *u.RankingPrompt
	}
	if u.ChairmanPrompt != nil {
		next.ChairmanPrompt = *u.ChairmanPrompt
	}
	if u.TitlePrompt != nil {
		next.TitlePrompt = *u.TitlePrompt
	}

	if err := s.save(next); err != nil {
		return Settings{}, err
	}
	s.cached = &next
	return next.clone(), nil
}

// loadFromFile reads the settings document, merged over the defaults. A
// missing or corrupt file yields the defaults.
func (s *Store) loadFromFile() Settings {
	merged := s.defaults.clone()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read settings file, using defaults",
				logger.String("path", s.path),
				logger.String("error", err.Error()))
		}
		return merged
	}

	if err := json.Unmarshal(data, &merged); err != nil {
		logger.Warn("Failed to parse settings file, using defaults",
			logger.String("path", s.path),
			logger.String("error", err.Error()))
		return s.defaults.clone()
	}

	return merged
}

// save persists the settings document to disk.
func (s *Store) save(st Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (st Settings) clone() Settings {
	out := st
	out.CouncilModels = append([]string(nil), st.CouncilModels...)
	return out
}
