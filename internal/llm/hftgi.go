package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kayz/fabula/internal/appconfig"
)

// HFTGIBackend talks to a HuggingFace text-generation-inference server over
// its JSON generate endpoint. History is flattened into the prompt; TGI has
// no chat framing of its own.
type HFTGIBackend struct {
	httpClient *http.Client
	cfg        *appconfig.HFTGIBackendConfig
}

func NewHFTGIBackend(cfg *appconfig.HFTGIBackendConfig) *HFTGIBackend {
	return &HFTGIBackend{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		cfg:        cfg,
	}
}

func (b *HFTGIBackend) Name() string { return "HFTGI" }

type hftgiRequest struct {
	Inputs     string          `json:"inputs"`
	Parameters hftgiParameters `json:"parameters"`
}

type hftgiParameters struct {
	MaxNewTokens int      `json:"max_new_tokens,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	TopP         *float64 `json:"top_p,omitempty"`
	Stop         []string `json:"stop,omitempty"`
}

type hftgiResponse struct {
	GeneratedText string `json:"generated_text"`
}

func (b *HFTGIBackend) Generate(ctx context.Context, prompt string, history []Message, gen *appconfig.GenerationConfig) (string, error) {
	var sb strings.Builder
	for _, m := range history {
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString(prompt)

	reqBody := hftgiRequest{Inputs: sb.String()}
	if gen != nil {
		if gen.MaxTokens != nil {
			reqBody.Parameters.MaxNewTokens = *gen.MaxTokens
		}
		reqBody.Parameters.Temperature = gen.Temperature
		reqBody.Parameters.TopP = gen.TopP
		for _, s := range gen.Stop {
			reqBody.Parameters.Stop = append(reqBody.Parameters.Stop, fmt.Sprint(s))
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	url := strings.TrimRight(b.cfg.ServerURL, "/") + "/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hftgi request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hftgi returned %d: %s", resp.StatusCode, string(body))
	}

	var out hftgiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("hftgi response: %w", err)
	}
	return out.GeneratedText, nil
}
