package llm

import (
	"context"
)

// Message is a single turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request describes a chat completion call. The system prompt is carried
// separately because providers differ in how they accept it.
type Request struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// Client generates chat completions against a language-model provider.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
