package config

import (
	"os"
	"strings"
)

// Default values applied by Normalize.
const (
	DefaultProvider = "openai"
	DefaultModel    = "gpt-3.5-turbo"
	DefaultUIMode   = "auto"
)

// Environment variables that override config values.
const (
	EnvProvider = "LLM_PROVIDER"
	EnvModel    = "LLM_MODEL"
	EnvBaseURL  = "LLM_BASE_URL"
)

// Normalize applies environment overrides and fills defaults.
func Normalize(cfg *Config) {
	if value := strings.TrimSpace(os.Getenv(EnvProvider)); value != "" {
		cfg.Provider = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvModel)); value != "" {
		cfg.Model = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvBaseURL)); value != "" {
		cfg.BaseURL = value
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.APIKeyEnv = strings.TrimSpace(cfg.APIKeyEnv)
	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	if cfg.UI == "" {
		cfg.UI = DefaultUIMode
	}
	cfg.Output.ResultsFile = strings.TrimSpace(cfg.Output.ResultsFile)
	if cfg.Output.ResultsFile == "" {
		cfg.Output.ResultsFile = DefaultResultsFile
	}
	cfg.Output.JSONFile = strings.TrimSpace(cfg.Output.JSONFile)
	cfg.Output.MarkdownFile = strings.TrimSpace(cfg.Output.MarkdownFile)
	cfg.History.Path = strings.TrimSpace(cfg.History.Path)
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath()
	}
}
