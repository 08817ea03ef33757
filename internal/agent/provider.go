package agent

import "context"

// Message is a single chat message sent to a completion endpoint.
type Message struct {
	Role    string
	Content string
}

// Prompt is the fully assembled request sent to a provider.
type Prompt struct {
	Messages []Message
}

// UserPrompt wraps text in a prompt carrying a single user-role message.
func UserPrompt(text string) Prompt {
	return Prompt{Messages: []Message{{Role: "user", Content: text}}}
}

// Completion is the text a provider returned for a prompt.
type Completion struct {
	Text      string
	Model     string
	TokensIn  int
	TokensOut int
}

// Provider completes prompts against a language-model endpoint.
type Provider interface {
	Complete(ctx context.Context, prompt Prompt) (Completion, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, prompt Prompt) (Completion, error)

// Complete calls f.
func (f ProviderFunc) Complete(ctx context.Context, prompt Prompt) (Completion, error) {
	return f(ctx, prompt)
}
