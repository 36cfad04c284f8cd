package llm

import "errors"

// ErrUnavailable is returned when the generation backend cannot produce a
// completion (transport failure, timeout, bad status, malformed response).
// Callers match it with errors.Is to distinguish backend outages from
// pipeline bugs.
var ErrUnavailable = errors.New("generation backend unavailable")

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens specifies the maximum number of tokens to generate.
	// If 0, no limit is applied.
	MaxTokens int

	// Temperature controls the randomness of the output.
	Temperature float32
}
