package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Reply is a scripted chat completion answer.
type Reply struct {
	// Status overrides the HTTP status when non-zero.
	Status int
	// Text becomes the first choice's message content.
	Text string
	// Raw replaces the whole response body when set.
	Raw string
}

// Responder produces a reply for a prompt.
type Responder func(prompt string) Reply

// CompletionServer is a fake OpenAI-compatible /chat/completions endpoint.
type CompletionServer struct {
	URL string

	server    *httptest.Server
	respond   Responder
	mu        sync.Mutex
	prompts   []string
	authHeads []string
}

// StartCompletionServer starts a fake endpoint that is closed with the test.
func StartCompletionServer(t testing.TB, respond Responder) *CompletionServer {
	t.Helper()
	fake := &CompletionServer{respond: respond}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.handle))
	fake.URL = fake.server.URL
	t.Cleanup(fake.server.Close)
	return fake
}

// Close stops the server early, making later calls fail at the transport.
func (s *CompletionServer) Close() {
	s.server.Close()
}

// Prompts returns the user prompts received so far.
func (s *CompletionServer) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// AuthHeaders returns the Authorization headers received so far.
func (s *CompletionServer) AuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHeads...)
}

func (s *CompletionServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/chat/completions" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var payload struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prompt := ""
	if len(payload.Messages) > 0 {
		prompt = payload.Messages[len(payload.Messages)-1].Content
	}
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.authHeads = append(s.authHeads, r.Header.Get("Authorization"))
	s.mu.Unlock()

	reply := Reply{Text: "ok"}
	if s.respond != nil {
		reply = s.respond(prompt)
	}
	w.Header().Set("Content-Type", "application/json")
	if reply.Status != 0 {
		w.WriteHeader(reply.Status)
	}
	if reply.Raw != "" {
		_, _ = w.Write([]byte(reply.Raw))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": payload.Model,
		"choices": []map[string]any{{
			"message":       map[string]string{"role": "assistant", "content": reply.Text},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{"prompt_tokens": len(strings.Fields(prompt)), "completion_tokens": len(strings.Fields(reply.Text))},
	})
}

// GuidelineOf extracts the guideline title from a review prompt.
func GuidelineOf(prompt string) string {
	const marker = "Guideline: "
	start := strings.Index(prompt, marker)
	if start < 0 {
		return ""
	}
	rest := prompt[start+len(marker):]
	if end := strings.Index(rest, ".\n"); end >= 0 {
		return rest[:end]
	}
	return rest
}

// ByGuideline answers with replies keyed by guideline title, falling back
// to a reply without "yes".
func ByGuideline(replies map[string]Reply) Responder {
	return func(prompt string) Reply {
		if reply, ok := replies[GuidelineOf(prompt)]; ok {
			return reply
		}
		return Reply{Text: "The article does not address this."}
	}
}
