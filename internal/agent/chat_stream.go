package agent

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// chatStreamChunk is a partial SSE payload.
type chatStreamChunk struct {
	Model   string             `json:"model"`
	Choices []chatStreamChoice `json:"choices"`
	Usage   *chatUsage         `json:"usage"`
}

// chatStreamChoice contains a delta event.
type chatStreamChoice struct {
	Delta        chatStreamDelta `json:"delta"`
	FinishReason string          `json:"finish_reason"`
}

// chatStreamDelta contains incremental content.
type chatStreamDelta struct {
	Content string `json:"content"`
}

// parseChatStream reads SSE output and concatenates the content deltas.
func parseChatStream(reader io.Reader) (Completion, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		content    strings.Builder
		completion Completion
		chunks     int
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}
		var chunk chatStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return Completion{}, &DecodeError{Err: err}
		}
		chunks++
		if chunk.Model != "" {
			completion.Model = chunk.Model
		}
		if chunk.Usage != nil {
			completion.TokensIn = chunk.Usage.PromptTokens
			completion.TokensOut = chunk.Usage.CompletionTokens
		}
		for _, choice := range chunk.Choices {
			content.WriteString(choice.Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return Completion{}, &TransportError{Err: err}
	}
	if chunks == 0 {
		return Completion{}, ErrEmptyResponse
	}
	completion.Text = content.String()
	return completion, nil
}
