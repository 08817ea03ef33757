package agent

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvAPIKey is the provider-neutral API key variable.
const EnvAPIKey = "LLM_API_KEY"

// Settings selects and configures a provider.
type Settings struct {
	Provider  string
	Model     string
	BaseURL   string
	APIKeyEnv string
	Stream    bool
	Retries   int
	Timeout   time.Duration
}

// providerDefaults holds per-provider base URLs and key variables.
var providerDefaults = map[string]struct {
	baseURL string
	keyEnv  string
}{
	"openai":     {baseURL: defaultOpenAIBaseURL, keyEnv: "OPENAI_API_KEY"},
	"openrouter": {baseURL: defaultOpenRouterBaseURL, keyEnv: "OPENROUTER_API_KEY"},
}

// NewProvider builds a provider from settings and the environment.
// The key is read from APIKeyEnv, then LLM_API_KEY, then the provider's own variable.
func NewProvider(settings Settings, client HTTPDoer) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(settings.Provider))
	if name == "" {
		return nil, fmt.Errorf("provider is required")
	}
	defaults, ok := providerDefaults[name]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q", settings.Provider)
	}
	apiKey := lookupKey(settings.APIKeyEnv, EnvAPIKey, defaults.keyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required (set %s or %s)", EnvAPIKey, defaults.keyEnv)
	}
	baseURL := settings.BaseURL
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaults.baseURL
	}
	chat, err := NewChatProvider(settings.Model, apiKey, baseURL, client)
	if err != nil {
		return nil, err
	}
	chat.Stream = settings.Stream
	if settings.Retries > 0 || settings.Timeout > 0 {
		return NewResilientProvider(chat, settings.Retries, settings.Timeout), nil
	}
	return chat, nil
}

func lookupKey(names ...string) string {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return value
		}
	}
	return ""
}
