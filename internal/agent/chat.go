package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Default API base URLs per provider.
const (
	defaultOpenAIBaseURL     = "https://api.openai.com/v1"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatProvider implements Provider for OpenAI-compatible chat completion APIs.
type ChatProvider struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
	Model   string
	Stream  bool
}

// NewChatProvider constructs a chat completions provider with explicit settings.
func NewChatProvider(model, apiKey, baseURL string, client HTTPDoer) (*ChatProvider, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &ChatProvider{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		Model:   model,
	}, nil
}

// Complete sends a prompt and returns the first choice's content.
func (p *ChatProvider) Complete(ctx context.Context, prompt Prompt) (Completion, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    p.Model,
		Stream:   p.Stream,
		Messages: buildChatMessages(prompt),
	})
	if err != nil {
		return Completion{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := p.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Completion{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return Completion{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Completion{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if p.Stream {
		completion, err := parseChatStream(resp.Body)
		if err != nil {
			return Completion{}, err
		}
		if completion.Model == "" {
			completion.Model = p.Model
		}
		return completion, nil
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Completion{}, &DecodeError{Err: err}
	}
	if len(decoded.Choices) == 0 {
		return Completion{}, ErrEmptyResponse
	}
	model := decoded.Model
	if model == "" {
		model = p.Model
	}
	return Completion{
		Text:      decoded.Choices[0].Message.Content,
		Model:     model,
		TokensIn:  decoded.Usage.PromptTokens,
		TokensOut: decoded.Usage.CompletionTokens,
	}, nil
}
