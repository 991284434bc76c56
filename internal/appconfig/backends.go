package appconfig

import (
	"github.com/kayz/fabula/internal/construct"
)

// Backend variant type names. The backend_config_type discriminator in the
// enclosing LLMConfig data selects one of these.
const (
	TypeOpenAIBackend    = "OpenAIBackendConfig"
	TypeHFTGIBackend     = "HFTGIBackendConfig"
	TypeOobaboogaBackend = "OobaboogaBackendConfig"
	TypeAnthropicBackend = "AnthropicBackendConfig"
)

// BackendConfig is the abstract role shared by all backend variants.
type BackendConfig interface {
	construct.Node
	// ModelName returns the model the backend should run.
	ModelName() string
}

// OpenAIBackendConfig configures the OpenAI chat completion backend.
type OpenAIBackendConfig struct {
	NameOfModel    string
	OpenAISettings map[string]any
}

func (c *OpenAIBackendConfig) TypeName() string  { return TypeOpenAIBackend }
func (c *OpenAIBackendConfig) ModelName() string { return c.NameOfModel }

func (c *OpenAIBackendConfig) CanonicalDoc() map[string]any {
	return map[string]any{
		"name_of_model":   c.NameOfModel,
		"openai_settings": c.OpenAISettings,
	}
}

var openAIBackendShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "name_of_model", Kind: construct.String},
		{Name: "openai_settings", Kind: construct.Map},
	},
}

func makeOpenAIBackend(doc map[string]any) (construct.Node, error) {
	model, err := stringField(doc, "name_of_model")
	if err != nil {
		return nil, err
	}
	settings, err := mapField(doc, "openai_settings")
	if err != nil {
		return nil, err
	}
	return &OpenAIBackendConfig{NameOfModel: model, OpenAISettings: settings}, nil
}

// HFTGIBackendConfig configures a HuggingFace text-generation-inference
// server backend.
type HFTGIBackendConfig struct {
	NameOfModel   string
	ServerURL     string
	HFTGISettings map[string]any
}

func (c *HFTGIBackendConfig) TypeName() string  { return TypeHFTGIBackend }
func (c *HFTGIBackendConfig) ModelName() string { return c.NameOfModel }

func (c *HFTGIBackendConfig) CanonicalDoc() map[string]any {
	return map[string]any{
		"name_of_model":  c.NameOfModel,
		"server_url":     c.ServerURL,
		"hftgi_settings": c.HFTGISettings,
	}
}

var hftgiBackendShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "name_of_model", Kind: construct.String},
		{Name: "server_url", Kind: construct.String},
		{Name: "hftgi_settings", Kind: construct.Map},
	},
}

func makeHFTGIBackend(doc map[string]any) (construct.Node, error) {
	model, err := stringField(doc, "name_of_model")
	if err != nil {
		return nil, err
	}
	serverURL, err := stringField(doc, "server_url")
	if err != nil {
		return nil, err
	}
	settings, err := mapField(doc, "hftgi_settings")
	if err != nil {
		return nil, err
	}
	return &HFTGIBackendConfig{NameOfModel: model, ServerURL: serverURL, HFTGISettings: settings}, nil
}

// OobaboogaBackendConfig configures an Oobabooga text-generation-webui
// backend reached over its streaming websocket API.
type OobaboogaBackendConfig struct {
	NameOfModel       string
	ServerURL         string
	OobaboogaSettings map[string]any
}

func (c *OobaboogaBackendConfig) TypeName() string  { return TypeOobaboogaBackend }
func (c *OobaboogaBackendConfig) ModelName() string { return c.NameOfModel }

func (c *OobaboogaBackendConfig) CanonicalDoc() map[string]any {
	return map[string]any{
		"name_of_model":      c.NameOfModel,
		"server_url":         c.ServerURL,
		"oobabooga_settings": c.OobaboogaSettings,
	}
}

var oobaboogaBackendShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "name_of_model", Kind: construct.String},
		{Name: "server_url", Kind: construct.String},
		{Name: "oobabooga_settings", Kind: construct.Map},
	},
}

func makeOobaboogaBackend(doc map[string]any) (construct.Node, error) {
	model, err := stringField(doc, "name_of_model")
	if err != nil {
		return nil, err
	}
	serverURL, err := stringField(doc, "server_url")
	if err != nil {
		return nil, err
	}
	settings, err := mapField(doc, "oobabooga_settings")
	if err != nil {
		return nil, err
	}
	return &OobaboogaBackendConfig{NameOfModel: model, ServerURL: serverURL, OobaboogaSettings: settings}, nil
}

// AnthropicBackendConfig configures the Anthropic messages backend.
type AnthropicBackendConfig struct {
	NameOfModel       string
	AnthropicSettings map[string]any
}

func (c *AnthropicBackendConfig) TypeName() string  { return TypeAnthropicBackend }
func (c *AnthropicBackendConfig) ModelName() string { return c.NameOfModel }

func (c *AnthropicBackendConfig) CanonicalDoc() map[string]any {
	return map[string]any{
		"name_of_model":      c.NameOfModel,
		"anthropic_settings": c.AnthropicSettings,
	}
}

var anthropicBackendShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "name_of_model", Kind: construct.String},
		{Name: "anthropic_settings", Kind: construct.Map},
	},
}

func makeAnthropicBackend(doc map[string]any) (construct.Node, error) {
	model, err := stringField(doc, "name_of_model")
	if err != nil {
		return nil, err
	}
	settings, err := mapField(doc, "anthropic_settings")
	if err != nil {
		return nil, err
	}
	return &AnthropicBackendConfig{NameOfModel: model, AnthropicSettings: settings}, nil
}
