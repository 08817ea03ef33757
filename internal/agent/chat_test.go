package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewProviderErrors(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewProvider(Settings{Model: "m"}, nil); err == nil {
		t.Fatalf("expected provider error")
	}
	if _, err := NewProvider(Settings{Provider: "unknown", Model: "m"}, nil); err == nil {
		t.Fatalf("expected unsupported provider error")
	}
	if _, err := NewProvider(Settings{Provider: "openai", Model: "m"}, nil); err == nil {
		t.Fatalf("expected missing api key error")
	}
}

func TestNewProviderKeyLookup(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv("OPENROUTER_API_KEY", "router-key")
	t.Setenv("CUSTOM_KEY", "custom-key")

	provider, err := NewProvider(Settings{Provider: "openrouter", Model: "m"}, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	chat := provider.(*ChatProvider)
	if chat.APIKey != "router-key" || chat.BaseURL != defaultOpenRouterBaseURL {
		t.Fatalf("unexpected provider: %+v", chat)
	}

	provider, err = NewProvider(Settings{Provider: "openrouter", Model: "m", APIKeyEnv: "CUSTOM_KEY"}, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if provider.(*ChatProvider).APIKey != "custom-key" {
		t.Fatalf("expected api_key_env to win")
	}

	provider, err = NewProvider(Settings{Provider: "openrouter", Model: "m", Retries: 2}, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, ok := provider.(*ResilientProvider); !ok {
		t.Fatalf("expected resilient wrapper, got %T", provider)
	}
}

func TestChatProviderSendsSingleUserMessage(t *testing.T) {
	var received chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"model":"gpt-test","choices":[{"message":{"role":"assistant","content":"Yes, it does."}}],"usage":{"prompt_tokens":12,"completion_tokens":4}}`)
	}))
	t.Cleanup(server.Close)

	provider, err := NewChatProvider("gpt-test", "key", server.URL+"/", server.Client())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	completion, err := provider.Complete(context.Background(), UserPrompt("Analyze this"))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completion.Text != "Yes, it does." || completion.TokensIn != 12 || completion.TokensOut != 4 {
		t.Fatalf("unexpected completion: %+v", completion)
	}
	if len(received.Messages) != 1 || received.Messages[0].Role != "user" || received.Messages[0].Content != "Analyze this" {
		t.Fatalf("unexpected request messages: %+v", received.Messages)
	}
	if received.Stream {
		t.Fatalf("expected non-streaming request")
	}
}

func TestChatProviderStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"hello \"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"world\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(server.Close)

	provider, err := NewChatProvider("model", "key", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	provider.Stream = true
	completion, err := provider.Complete(context.Background(), UserPrompt("hi"))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completion.Text != "hello world" || completion.Model != "model" {
		t.Fatalf("unexpected completion: %+v", completion)
	}
}

func TestChatProviderTypedErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		checkFn func(error) bool
	}{
		{
			name:   "status",
			status: http.StatusTooManyRequests,
			body:   `{"error":"slow down"}`,
			checkFn: func(err error) bool {
				var statusErr *StatusError
				return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests
			},
		},
		{
			name:   "decode",
			status: http.StatusOK,
			body:   `not json`,
			checkFn: func(err error) bool {
				var decodeErr *DecodeError
				return errors.As(err, &decodeErr)
			},
		},
		{
			name:   "empty choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
			checkFn: func(err error) bool {
				return errors.Is(err, ErrEmptyResponse)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			t.Cleanup(server.Close)

			provider, err := NewChatProvider("model", "key", server.URL, server.Client())
			if err != nil {
				t.Fatalf("new provider: %v", err)
			}
			_, err = provider.Complete(context.Background(), UserPrompt("hi"))
			if err == nil || !tc.checkFn(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestChatProviderTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	provider, err := NewChatProvider("model", "key", url, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	_, err = provider.Complete(context.Background(), UserPrompt("hi"))
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "completion request failed") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
