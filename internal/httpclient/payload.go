package httpclient

import (
	"encoding/json"
	"errors"
	"strings"
)

// ChatMessage is one entry in the request body's messages array.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the OpenAI-compatible chat-completions request body.
// Stream is serialized explicitly so the endpoint never defaults to
// streaming mode.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// BuildRequestBody constructs the JSON payload for a single probe request:
// one user-role message carrying the prompt, with streaming disabled.
func BuildRequestBody(prompt string) ([]byte, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New("prompt cannot be empty")
	}
	return json.Marshal(ChatRequest{
		Messages: []ChatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	})
}
