package appconfig

import (
	"fmt"

	"github.com/kayz/fabula/internal/construct"
)

// LLMConfig groups everything the generation side needs: which backend to
// talk to, the backend's own settings, and the sampling parameters.
type LLMConfig struct {
	BackendConfigType string
	Backend           BackendConfig
	GenerationPreset  *string
	Generation        *GenerationConfig
}

func (c *LLMConfig) TypeName() string { return TypeLLMConfig }

func (c *LLMConfig) CanonicalDoc() map[string]any {
	doc := map[string]any{
		"backend_config_type": c.BackendConfigType,
		"backend_config":      c.Backend.CanonicalDoc(),
		"generation_config":   c.Generation.CanonicalDoc(),
	}
	if c.GenerationPreset != nil {
		doc["generation_preset"] = *c.GenerationPreset
	}
	return doc
}

var llmShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "backend_config_type", Kind: construct.String},
		{Name: "backend_config", Kind: construct.Object, Node: FamilyBackend},
		{Name: "generation_preset", Kind: construct.String, Optional: true},
		{Name: "generation_config", Kind: construct.Object, Node: TypeGeneration},
	},
}

func makeLLMConfig(doc map[string]any) (construct.Node, error) {
	backendType, err := stringField(doc, "backend_config_type")
	if err != nil {
		return nil, err
	}
	backend, ok := doc["backend_config"].(BackendConfig)
	if !ok {
		return nil, fmt.Errorf("backend_config: expected constructed backend config, got %T", doc["backend_config"])
	}
	preset, err := optStringField(doc, "generation_preset")
	if err != nil {
		return nil, err
	}
	generation, ok := doc["generation_config"].(*GenerationConfig)
	if !ok {
		return nil, fmt.Errorf("generation_config: expected constructed generation config, got %T", doc["generation_config"])
	}
	return &LLMConfig{
		BackendConfigType: backendType,
		Backend:           backend,
		GenerationPreset:  preset,
		Generation:        generation,
	}, nil
}

// GenerationConfig carries the sampling parameters shared across backends.
// Its schema is preset-selected: the parent's generation_preset picks which
// preset document supplies defaults and bounds.
type GenerationConfig struct {
	MaxTokens        *int
	Temperature      *float64
	TopP             *float64
	N                *float64
	Stop             []any
	PresencePenalty  *float64
	FrequencyPenalty *float64
}

func (c *GenerationConfig) TypeName() string { return TypeGeneration }

func (c *GenerationConfig) CanonicalDoc() map[string]any {
	doc := map[string]any{}
	if c.MaxTokens != nil {
		doc["max_tokens"] = *c.MaxTokens
	}
	if c.Temperature != nil {
		doc["temperature"] = *c.Temperature
	}
	if c.TopP != nil {
		doc["top_p"] = *c.TopP
	}
	if c.N != nil {
		doc["n"] = *c.N
	}
	if c.Stop != nil {
		doc["stop"] = c.Stop
	}
	if c.PresencePenalty != nil {
		doc["presence_penalty"] = *c.PresencePenalty
	}
	if c.FrequencyPenalty != nil {
		doc["frequency_penalty"] = *c.FrequencyPenalty
	}
	return doc
}

var generationShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "max_tokens", Kind: construct.Int, Optional: true},
		{Name: "temperature", Kind: construct.Float, Optional: true},
		{Name: "top_p", Kind: construct.Float, Optional: true},
		{Name: "n", Kind: construct.Float, Optional: true},
		{Name: "stop", Kind: construct.List, Optional: true},
		{Name: "presence_penalty", Kind: construct.Float, Optional: true},
		{Name: "frequency_penalty", Kind: construct.Float, Optional: true},
	},
}

// generationSchemaName picks the preset schema document from the parent's
// generation_preset field. Falls back to the default preset.
func generationSchemaName(_, parent map[string]any) (string, error) {
	preset := "default"
	if parent != nil {
		if raw, ok := parent["generation_preset"]; ok && raw != nil {
			s, ok := raw.(string)
			if !ok {
				return "", fmt.Errorf("generation_preset: expected string, got %T", raw)
			}
			preset = s
		}
	}
	return "generation/presets/" + preset, nil
}

func makeGenerationConfig(doc map[string]any) (construct.Node, error) {
	maxTokens, err := optIntField(doc, "max_tokens")
	if err != nil {
		return nil, err
	}
	temperature, err := optFloatField(doc, "temperature")
	if err != nil {
		return nil, err
	}
	topP, err := optFloatField(doc, "top_p")
	if err != nil {
		return nil, err
	}
	n, err := optFloatField(doc, "n")
	if err != nil {
		return nil, err
	}
	var stop []any
	if raw, ok := doc["stop"]; ok && raw != nil {
		stop, err = listField(doc, "stop")
		if err != nil {
			return nil, err
		}
	}
	presence, err := optFloatField(doc, "presence_penalty")
	if err != nil {
		return nil, err
	}
	frequency, err := optFloatField(doc, "frequency_penalty")
	if err != nil {
		return nil, err
	}
	return &GenerationConfig{
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		TopP:             topP,
		N:                n,
		Stop:             stop,
		PresencePenalty:  presence,
		FrequencyPenalty: frequency,
	}, nil
}
