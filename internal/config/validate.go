package config

import "fmt"

var supportedProviders = map[string]struct{}{
	"openai":     {},
	"openrouter": {},
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if _, ok := supportedProviders[cfg.Provider]; !ok {
		collector.add("provider", fmt.Sprintf("unsupported provider %q (expected openai|openrouter)", cfg.Provider))
	}
	if cfg.Model == "" {
		collector.add("model", "is required")
	}

	switch cfg.UI {
	case "auto", "live", "plain":
	default:
		collector.add("ui", fmt.Sprintf("invalid mode %q (expected auto|live|plain)", cfg.UI))
	}

	if cfg.Output.ResultsFile == "" {
		collector.add("output.results_file", "is required")
	}
	if cfg.HistoryEnabled() && cfg.History.Path == "" {
		collector.add("history.path", "is required when history is enabled")
	}

	if cfg.Resilience.Retries < 0 {
		collector.add("resilience.retries", "must be >= 0")
	}
	if cfg.Resilience.TimeoutSeconds < 0 {
		collector.add("resilience.timeout_seconds", "must be >= 0")
	}

	return collector.result()
}
