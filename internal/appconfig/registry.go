package appconfig

import (
	"github.com/kayz/fabula/internal/construct"
	"github.com/kayz/fabula/internal/schema"
)

func fixedSchema(name string) func(own, parent map[string]any) (string, error) {
	return func(_, _ map[string]any) (string, error) { return name, nil }
}

// NewRegistry returns the static registry of every configuration type and
// variant family the application knows about.
func NewRegistry() *construct.Registry {
	r := construct.NewRegistry()

	r.RegisterType(TypeConfig, &construct.Registration{
		Shape:      configShape,
		SchemaName: fixedSchema("config"),
		Make:       makeConfig,
	})
	r.RegisterType(TypeState, &construct.Registration{
		Shape:      stateShape,
		SchemaName: fixedSchema("state"),
		Make:       makeState,
	})
	r.RegisterType(TypeLLMConfig, &construct.Registration{
		Shape:      llmShape,
		SchemaName: fixedSchema("generation/llm_config"),
		Make:       makeLLMConfig,
	})
	r.RegisterType(TypeGeneration, &construct.Registration{
		Shape:      generationShape,
		SchemaName: generationSchemaName,
		Make:       makeGenerationConfig,
	})
	r.RegisterType(TypeTransformation, &construct.Registration{
		Shape:      transformationShape,
		SchemaName: fixedSchema("transformation"),
		Make:       makeTransformationConfig,
	})

	r.RegisterType(TypeOpenAIBackend, &construct.Registration{
		Shape:      openAIBackendShape,
		SchemaName: fixedSchema("generation/backends/openai"),
		Make:       makeOpenAIBackend,
	})
	r.RegisterType(TypeHFTGIBackend, &construct.Registration{
		Shape:      hftgiBackendShape,
		SchemaName: fixedSchema("generation/backends/hftgi"),
		Make:       makeHFTGIBackend,
	})
	r.RegisterType(TypeOobaboogaBackend, &construct.Registration{
		Shape:      oobaboogaBackendShape,
		SchemaName: fixedSchema("generation/backends/oobabooga"),
		Make:       makeOobaboogaBackend,
	})
	r.RegisterType(TypeAnthropicBackend, &construct.Registration{
		Shape:      anthropicBackendShape,
		SchemaName: fixedSchema("generation/backends/anthropic"),
		Make:       makeAnthropicBackend,
	})

	r.RegisterType(TypeCLIInterface, &construct.Registration{
		Shape:      cliInterfaceShape,
		SchemaName: fixedSchema("interfaces/cli"),
		Make:       makeCLIInterface,
	})
	r.RegisterType(TypeWebInterface, &construct.Registration{
		Shape:      webInterfaceShape,
		SchemaName: fixedSchema("interfaces/webui"),
		Make:       makeWebInterface,
	})
	r.RegisterType(TypeAPIInterface, &construct.Registration{
		Shape:      apiInterfaceShape,
		SchemaName: fixedSchema("interfaces/api"),
		Make:       makeAPIInterface,
	})

	r.RegisterFamily(&construct.Family{
		Name:          FamilyBackend,
		Discriminator: "backend_config_type",
		Default:       "OpenAI",
		Variants: map[string]string{
			"OpenAI":    TypeOpenAIBackend,
			"HFTGI":     TypeHFTGIBackend,
			"Oobabooga": TypeOobaboogaBackend,
			"Anthropic": TypeAnthropicBackend,
		},
	})
	r.RegisterFamily(&construct.Family{
		Name:          FamilyInterface,
		Discriminator: "interface_type",
		Default:       "cli",
		Variants: map[string]string{
			"cli":   TypeCLIInterface,
			"webui": TypeWebInterface,
			"api":   TypeAPIInterface,
		},
	})

	return r
}

// NewEngine wires the registry to a schema store.
func NewEngine(store schema.Store) *construct.Engine {
	return construct.NewEngine(store, NewRegistry())
}

// BuildConfig constructs the full application configuration tree from a
// partial document.
func BuildConfig(engine *construct.Engine, data map[string]any) (*Config, error) {
	node, err := engine.Construct(TypeConfig, data, nil)
	if err != nil {
		return nil, err
	}
	return node.(*Config), nil
}

// BuildState constructs a conversation state from a partial or saved
// document.
func BuildState(engine *construct.Engine, data map[string]any) (*State, error) {
	node, err := engine.Construct(TypeState, data, nil)
	if err != nil {
		return nil, err
	}
	return node.(*State), nil
}
