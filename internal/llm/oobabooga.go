package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/kayz/fabula/internal/appconfig"
)

// OobaboogaBackend talks to a text-generation-webui server over its
// streaming websocket API and concatenates the streamed chunks into one
// response.
type OobaboogaBackend struct {
	cfg *appconfig.OobaboogaBackendConfig
}

func NewOobaboogaBackend(cfg *appconfig.OobaboogaBackendConfig) *OobaboogaBackend {
	return &OobaboogaBackend{cfg: cfg}
}

func (b *OobaboogaBackend) Name() string { return "Oobabooga" }

type oobaboogaEvent struct {
	Event string `json:"event"`
	Text  string `json:"text"`
}

func (b *OobaboogaBackend) Generate(ctx context.Context, prompt string, history []Message, gen *appconfig.GenerationConfig) (string, error) {
	var sb strings.Builder
	for _, m := range history {
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString(prompt)

	request := map[string]any{"prompt": sb.String()}
	if gen != nil {
		if gen.MaxTokens != nil {
			request["max_new_tokens"] = *gen.MaxTokens
		}
		if gen.Temperature != nil {
			request["temperature"] = *gen.Temperature
		}
		if gen.TopP != nil {
			request["top_p"] = *gen.TopP
		}
		if len(gen.Stop) > 0 {
			request["stopping_strings"] = gen.Stop
		}
	}
	for k, v := range b.cfg.OobaboogaSettings {
		request[k] = v
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, b.cfg.ServerURL, nil)
	if err != nil {
		return "", fmt.Errorf("oobabooga dial %s: %w", b.cfg.ServerURL, err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(request); err != nil {
		return "", fmt.Errorf("oobabooga send: %w", err)
	}

	var out strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return "", fmt.Errorf("oobabooga read: %w", err)
		}
		var event oobaboogaEvent
		if err := json.Unmarshal(message, &event); err != nil {
			return "", fmt.Errorf("oobabooga event: %w", err)
		}
		switch event.Event {
		case "text_stream":
			out.WriteString(event.Text)
		case "stream_end":
			return out.String(), nil
		}
	}
}
