package config

// Config is the docreview configuration loaded from .docreview/config.yml.
type Config struct {
	Version    int              `yaml:"version"`
	Provider   string           `yaml:"provider"`
	Model      string           `yaml:"model"`
	BaseURL    string           `yaml:"base_url"`
	APIKeyEnv  string           `yaml:"api_key_env"`
	Stream     bool             `yaml:"stream"`
	UI         string           `yaml:"ui"`
	Output     OutputConfig     `yaml:"output"`
	History    HistoryConfig    `yaml:"history"`
	Resilience ResilienceConfig `yaml:"resilience"`
}

// OutputConfig names the files a review run writes.
type OutputConfig struct {
	ResultsFile  string `yaml:"results_file"`
	JSONFile     string `yaml:"json_file"`
	MarkdownFile string `yaml:"markdown_file"`
}

// HistoryConfig controls the review history database.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ResilienceConfig opts into retries and per-call timeouts for completion calls.
// The zero value performs a single call with no timeout.
type ResilienceConfig struct {
	Retries        int `yaml:"retries"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// HistoryEnabled reports whether review runs are recorded.
func (c Config) HistoryEnabled() bool {
	if c.History.Enabled == nil {
		return true
	}
	return *c.History.Enabled
}
