package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/kayz/fabula/internal/appconfig"
	"github.com/liushuangls/go-anthropic/v2"
	"github.com/spf13/cast"
)

// AnthropicBackend talks to the Anthropic messages API.
type AnthropicBackend struct {
	client *anthropic.Client
	cfg    *appconfig.AnthropicBackendConfig
}

func NewAnthropicBackend(cfg *appconfig.AnthropicBackendConfig) (*AnthropicBackend, error) {
	apiKey := cast.ToString(cfg.AnthropicSettings["api_key"])
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (anthropic_settings.api_key or ANTHROPIC_API_KEY)")
	}

	return &AnthropicBackend{
		client: anthropic.NewClient(apiKey),
		cfg:    cfg,
	}, nil
}

func (b *AnthropicBackend) Name() string { return "Anthropic" }

func (b *AnthropicBackend) Generate(ctx context.Context, prompt string, history []Message, gen *appconfig.GenerationConfig) (string, error) {
	var system string
	messages := make([]anthropic.Message, 0, len(history)+1)
	for _, m := range history {
		switch m.Role {
		case "system":
			// Anthropic takes the system prompt out of band.
			system = m.Content
		case "assistant":
			messages = append(messages, anthropic.NewAssistantTextMessage(m.Content))
		default:
			messages = append(messages, anthropic.NewUserTextMessage(m.Content))
		}
	}
	messages = append(messages, anthropic.NewUserTextMessage(prompt))

	maxTokens := 1024
	if gen != nil && gen.MaxTokens != nil {
		maxTokens = *gen.MaxTokens
	}
	req := anthropic.MessagesRequest{
		Model:     anthropic.Model(b.cfg.NameOfModel),
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	if system != "" {
		req.System = system
	}
	if gen != nil {
		if gen.Temperature != nil {
			t := float32(*gen.Temperature)
			req.Temperature = &t
		}
		if gen.TopP != nil {
			p := float32(*gen.TopP)
			req.TopP = &p
		}
		for _, s := range gen.Stop {
			req.StopSequences = append(req.StopSequences, cast.ToString(s))
		}
	}

	resp, err := b.client.CreateMessages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}
	return resp.GetFirstContentText(), nil
}
