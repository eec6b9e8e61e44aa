package llm

import (
	"fmt"
	"strings"

	"github.com/mednex/mednex/internal/config"
)

// NewClient builds the chat completion client selected by configuration.
// A nil client (with nil error) means no provider is configured; callers are
// expected to degrade to canned responses rather than fail.
func NewClient(cfg *config.Config) (Client, error) {
	provider := strings.ToLower(cfg.LLMProvider)

	switch provider {
	case "", "none":
		return nil, nil

	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, nil
		}
		return NewGroqClient(cfg.GroqAPIKey, cfg.LLMModel, cfg.GroqBaseURL), nil

	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, nil
		}
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.LLMModel), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
