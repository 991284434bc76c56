package appconfig

import (
	"github.com/kayz/fabula/internal/construct"
)

// Interface variant type names. The interface_type discriminator in the root
// config data selects one of these.
const (
	TypeCLIInterface = "CLIInterfaceConfig"
	TypeWebInterface = "WebInterfaceConfig"
	TypeAPIInterface = "APIInterfaceConfig"
)

// InterfaceConfig is the abstract role shared by all interface variants.
type InterfaceConfig interface {
	construct.Node
	interfaceConfig()
}

// CLIInterfaceConfig configures the terminal front end.
type CLIInterfaceConfig struct {
	InterfaceMode string
	OutputPrefix  string
}

func (c *CLIInterfaceConfig) TypeName() string { return TypeCLIInterface }
func (c *CLIInterfaceConfig) interfaceConfig() {}

func (c *CLIInterfaceConfig) CanonicalDoc() map[string]any {
	return map[string]any{
		"interface_mode": c.InterfaceMode,
		"output_prefix":  c.OutputPrefix,
	}
}

var cliInterfaceShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "interface_mode", Kind: construct.String},
		{Name: "output_prefix", Kind: construct.String},
	},
}

func makeCLIInterface(doc map[string]any) (construct.Node, error) {
	mode, err := stringField(doc, "interface_mode")
	if err != nil {
		return nil, err
	}
	prefix, err := stringField(doc, "output_prefix")
	if err != nil {
		return nil, err
	}
	return &CLIInterfaceConfig{InterfaceMode: mode, OutputPrefix: prefix}, nil
}

// WebInterfaceConfig configures the browser chat front end.
type WebInterfaceConfig struct {
	Host string
	Port int
}

func (c *WebInterfaceConfig) TypeName() string { return TypeWebInterface }
func (c *WebInterfaceConfig) interfaceConfig() {}

func (c *WebInterfaceConfig) CanonicalDoc() map[string]any {
	return map[string]any{
		"host": c.Host,
		"port": c.Port,
	}
}

var webInterfaceShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "host", Kind: construct.String},
		{Name: "port", Kind: construct.Int},
	},
}

func makeWebInterface(doc map[string]any) (construct.Node, error) {
	host, err := stringField(doc, "host")
	if err != nil {
		return nil, err
	}
	port, err := intField(doc, "port")
	if err != nil {
		return nil, err
	}
	return &WebInterfaceConfig{Host: host, Port: port}, nil
}

// APIInterfaceConfig configures the headless JSON front end.
type APIInterfaceConfig struct {
	Host      string
	Port      int
	AuthToken *string
}

func (c *APIInterfaceConfig) TypeName() string { return TypeAPIInterface }
func (c *APIInterfaceConfig) interfaceConfig() {}

func (c *APIInterfaceConfig) CanonicalDoc() map[string]any {
	doc := map[string]any{
		"host": c.Host,
		"port": c.Port,
	}
	if c.AuthToken != nil {
		doc["auth_token"] = *c.AuthToken
	}
	return doc
}

var apiInterfaceShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "host", Kind: construct.String},
		{Name: "port", Kind: construct.Int},
		{Name: "auth_token", Kind: construct.String, Optional: true},
	},
}

func makeAPIInterface(doc map[string]any) (construct.Node, error) {
	host, err := stringField(doc, "host")
	if err != nil {
		return nil, err
	}
	port, err := intField(doc, "port")
	if err != nil {
		return nil, err
	}
	token, err := optStringField(doc, "auth_token")
	if err != nil {
		return nil, err
	}
	return &APIInterfaceConfig{Host: host, Port: port, AuthToken: token}, nil
}
