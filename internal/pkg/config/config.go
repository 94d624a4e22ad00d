package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration
type Config struct {
	AppName string        `yaml:"app_name"`
	Server  ServerConfig  `yaml:"server"`
	Council CouncilConfig `yaml:"council"`
	Storage StorageConfig `yaml:"storage"`
	Logs    LogsConfig    `yaml:"logs"`
	API     API           `yaml:"api"`
}

// ServerConfig holds server related configuration
type ServerConfig struct {
	Port           int    `yaml:"port"`
	Host           string `yaml:"host"`
	WebDir         string `yaml:"web_dir"`
	ReadTimeout    int    `yaml:"read_timeout"`
	WriteTimeout   int    `yaml:"write_timeout"`
	IdleTimeout    int    `yaml:"idle_timeout"`
	MaxHeaderBytes int    `yaml:"max_header_bytes"`
}

// CouncilConfig holds the default council composition and provider endpoints.
// These are the boot-time defaults; the runtime settings document can override
// all of them without a restart.
type CouncilConfig struct {
	Provider          string           `yaml:"provider"` // "openrouter" or "ollama"
	Models            []string         `yaml:"models"`
	ChairmanModel     string           `yaml:"chairman_model"`
	TitleModel        string           `yaml:"title_model"`
	LocalDefaultModel string           `yaml:"local_default_model"`
	OpenRouter        OpenRouterConfig `yaml:"openrouter"`
	Ollama            OllamaConfig     `yaml:"ollama"`
	RequestTimeout    int              `yaml:"request_timeout"` // seconds
	TitleTimeout      int              `yaml:"title_timeout"`   // seconds
}

// OpenRouterConfig holds OpenRouter API configuration
type OpenRouterConfig struct {
	APIKey string `yaml:"api_key"`
	APIURL string `yaml:"api_url"`
}

// OllamaConfig holds Ollama API configuration
type OllamaConfig struct {
	APIURL string `yaml:"api_url"`
}

// StorageConfig holds paths for persisted documents
type StorageConfig struct {
	DataDir      string `yaml:"data_dir"`
	SettingsPath string `yaml:"settings_path"`
}

// LogsConfig holds logging configuration
type LogsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
	Format   string `yaml:"format"`
	Stdout   bool   `yaml:"stdout"`
}

// LoadConfig loads the configuration from the specified file path
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides lets the environment supply secrets and deployment-local
// endpoints, so they never have to live in the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.Council.OpenRouter.APIKey = v
	}
	if v := os.Getenv("OLLAMA_API_URL"); v != "" {
		cfg.Council.Ollama.APIURL = v
	}
	if v := os.Getenv("SETTINGS_PATH"); v != "" {
		cfg.Storage.SettingsPath = v
	}
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{
		AppName: "llm-council",
		Server: ServerConfig{
			Port:   8080,
			Host:   "0.0.0.0",
			WebDir: "./web/dist",
		},
		Council: CouncilConfig{
			Provider: "openrouter",
			Models: []string{
				"openai/gpt-5.1",
				"google/gemini-3-pro-preview",
				"anthropic/claude-sonnet-4.5",
				"x-ai/grok-4",
			},
			ChairmanModel:     "google/gemini-3-pro-preview",
			TitleModel:        "google/gemini-3-pro-preview",
			LocalDefaultModel: "llama3.2",
			OpenRouter: OpenRouterConfig{
				APIURL: "https://openrouter.ai/api/v1",
			},
			Ollama: OllamaConfig{
				APIURL: "http://localhost:11434/api/chat",
			},
			RequestTimeout: 120,
			TitleTimeout:   30,
		},
		Storage: StorageConfig{
			DataDir:      "data/conversations",
			SettingsPath: "data/settings.json",
		},
		Logs: LogsConfig{
			Enabled:  true,
			Level:    "info",
			FilePath: "logs",
			Format:   "json",
			Stdout:   true,
		},
	}
	applyEnvOverrides(cfg)
	return cfg
}
