package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/kayz/fabula/internal/appconfig"
	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cast"
)

// OpenAIBackend talks to the OpenAI chat completion API, or any compatible
// server when openai_settings carries a base_url.
type OpenAIBackend struct {
	client *openai.Client
	cfg    *appconfig.OpenAIBackendConfig
}

func NewOpenAIBackend(cfg *appconfig.OpenAIBackendConfig) (*OpenAIBackend, error) {
	apiKey := cast.ToString(cfg.OpenAISettings["api_key"])
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (openai_settings.api_key or OPENAI_API_KEY)")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL := cast.ToString(cfg.OpenAISettings["base_url"]); baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIBackend{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

func (b *OpenAIBackend) Name() string { return "OpenAI" }

func (b *OpenAIBackend) Generate(ctx context.Context, prompt string, history []Message, gen *appconfig.GenerationConfig) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:    b.cfg.NameOfModel,
		Messages: messages,
	}
	if gen != nil {
		if gen.MaxTokens != nil {
			req.MaxTokens = *gen.MaxTokens
		}
		if gen.Temperature != nil {
			req.Temperature = float32(*gen.Temperature)
		}
		if gen.TopP != nil {
			req.TopP = float32(*gen.TopP)
		}
		if gen.N != nil {
			req.N = int(*gen.N)
		}
		if gen.PresencePenalty != nil {
			req.PresencePenalty = float32(*gen.PresencePenalty)
		}
		if gen.FrequencyPenalty != nil {
			req.FrequencyPenalty = float32(*gen.FrequencyPenalty)
		}
		for _, s := range gen.Stop {
			req.Stop = append(req.Stop, cast.ToString(s))
		}
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
