package appconfig

import (
	"fmt"

	"github.com/kayz/fabula/internal/construct"
)

// Type and family names as registered with the construction engine.
const (
	TypeConfig         = "Config"
	TypeState          = "State"
	TypeLLMConfig      = "LLMConfig"
	TypeGeneration     = "GenerationConfig"
	TypeTransformation = "TransformationConfig"

	FamilyBackend   = "BackendConfig"
	FamilyInterface = "InterfaceConfig"
)

// Config is the root of the application configuration tree: everything a
// conversation or game session needs, fully populated and validated.
type Config struct {
	AppName        string
	ConfigName     *string
	InterfaceType  string
	Interface      InterfaceConfig
	LLM            *LLMConfig
	Transformation *TransformationConfig
}

func (c *Config) TypeName() string { return TypeConfig }

func (c *Config) CanonicalDoc() map[string]any {
	doc := map[string]any{
		"app_name":              c.AppName,
		"interface_type":        c.InterfaceType,
		"interface_config":      c.Interface.CanonicalDoc(),
		"llm_config":            c.LLM.CanonicalDoc(),
		"transformation_config": c.Transformation.CanonicalDoc(),
	}
	if c.ConfigName != nil {
		doc["config_name"] = *c.ConfigName
	}
	return doc
}

var configShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "app_name", Kind: construct.String},
		{Name: "config_name", Kind: construct.String, Optional: true},
		{Name: "interface_type", Kind: construct.String},
		{Name: "interface_config", Kind: construct.Object, Node: FamilyInterface},
		{Name: "llm_config", Kind: construct.Object, Node: TypeLLMConfig},
		{Name: "transformation_config", Kind: construct.Object, Node: TypeTransformation},
	},
}

func makeConfig(doc map[string]any) (construct.Node, error) {
	appName, err := stringField(doc, "app_name")
	if err != nil {
		return nil, err
	}
	configName, err := optStringField(doc, "config_name")
	if err != nil {
		return nil, err
	}
	interfaceType, err := stringField(doc, "interface_type")
	if err != nil {
		return nil, err
	}
	iface, ok := doc["interface_config"].(InterfaceConfig)
	if !ok {
		return nil, fmt.Errorf("interface_config: expected constructed interface config, got %T", doc["interface_config"])
	}
	llm, ok := doc["llm_config"].(*LLMConfig)
	if !ok {
		return nil, fmt.Errorf("llm_config: expected constructed llm config, got %T", doc["llm_config"])
	}
	transformation, ok := doc["transformation_config"].(*TransformationConfig)
	if !ok {
		return nil, fmt.Errorf("transformation_config: expected constructed transformation config, got %T", doc["transformation_config"])
	}
	return &Config{
		AppName:        appName,
		ConfigName:     configName,
		InterfaceType:  interfaceType,
		Interface:      iface,
		LLM:            llm,
		Transformation: transformation,
	}, nil
}

// State holds the conversation or game state that survives between turns,
// mostly message history. It is built through the same schema-driven engine
// as configuration so saved states are validated on reload.
type State struct {
	ChatHistory  []any
	LLMIOHistory []any
}

func (s *State) TypeName() string { return TypeState }

func (s *State) CanonicalDoc() map[string]any {
	return map[string]any{
		"chat_history":   s.ChatHistory,
		"llm_io_history": s.LLMIOHistory,
	}
}

var stateShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "chat_history", Kind: construct.List},
		{Name: "llm_io_history", Kind: construct.List},
	},
}

func makeState(doc map[string]any) (construct.Node, error) {
	chat, err := listField(doc, "chat_history")
	if err != nil {
		return nil, err
	}
	llmIO, err := listField(doc, "llm_io_history")
	if err != nil {
		return nil, err
	}
	return &State{ChatHistory: chat, LLMIOHistory: llmIO}, nil
}
