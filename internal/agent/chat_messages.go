package agent

// chatRequest is the JSON payload sent to a chat completions endpoint.
type chatRequest struct {
	Model    string        `json:"model"`
	Stream   bool          `json:"stream,omitempty"`
	Messages []chatMessage `json:"messages"`
}

// chatMessage represents a single chat message on the wire.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is a non-streaming chat completions response.
type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// buildChatMessages converts a prompt into wire messages.
func buildChatMessages(prompt Prompt) []chatMessage {
	messages := make([]chatMessage, 0, len(prompt.Messages))
	for _, msg := range prompt.Messages {
		role := msg.Role
		if role == "" {
			role = "user"
		}
		messages = append(messages, chatMessage{Role: role, Content: msg.Content})
	}
	return messages
}
