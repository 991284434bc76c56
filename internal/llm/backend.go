package llm

import (
	"context"
	"fmt"

	"github.com/kayz/fabula/internal/appconfig"
)

// Message is one turn of conversation context sent to a backend.
type Message struct {
	Role    string // "system" | "user" | "assistant"
	Content string
}

// Backend generates text from a prompt plus conversation history. Each
// variant of the backend config family has one implementation.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string, history []Message, gen *appconfig.GenerationConfig) (string, error)
}

// NewBackend builds the backend matching the constructed LLM configuration.
func NewBackend(cfg *appconfig.LLMConfig) (Backend, error) {
	switch backend := cfg.Backend.(type) {
	case *appconfig.OpenAIBackendConfig:
		return NewOpenAIBackend(backend)
	case *appconfig.AnthropicBackendConfig:
		return NewAnthropicBackend(backend)
	case *appconfig.HFTGIBackendConfig:
		return NewHFTGIBackend(backend), nil
	case *appconfig.OobaboogaBackendConfig:
		return NewOobaboogaBackend(backend), nil
	default:
		return nil, fmt.Errorf("no backend implementation for %s", cfg.Backend.TypeName())
	}
}
