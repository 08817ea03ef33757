package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultConfigTemplate = `version: 1

# openai or openrouter; both use the chat completions API.
provider: "openai"
model: "gpt-3.5-turbo"
# base_url: "https://api.openai.com/v1"
# api_key_env: "OPENAI_API_KEY"
stream: false

# auto | live | plain
ui: "auto"

output:
  results_file: "%s"
  json_file: ""
  markdown_file: ""

history:
  enabled: true

resilience:
  retries: 0
  timeout_seconds: 0
`

// RenderDefault returns the scaffolded config contents.
func RenderDefault(resultsFile string) string {
	resultsFile = strings.TrimSpace(resultsFile)
	if resultsFile == "" {
		resultsFile = DefaultResultsFile
	}
	return fmt.Sprintf(defaultConfigTemplate, resultsFile)
}

// Scaffold writes a default config file, refusing to overwrite an existing one.
func Scaffold(configPath, resultsFile string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(RenderDefault(resultsFile)), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
