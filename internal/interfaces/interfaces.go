package interfaces

import (
	"context"
	"fmt"

	"github.com/kayz/fabula/internal/appconfig"
	"github.com/kayz/fabula/internal/engine"
)

// Interface is a front end capability: it reads user input, drives the
// engine and displays replies until the session ends.
type Interface interface {
	Run(ctx context.Context, e *engine.Engine) error
}

// New returns the front end matching the constructed interface config.
func New(cfg appconfig.InterfaceConfig) (Interface, error) {
	switch c := cfg.(type) {
	case *appconfig.CLIInterfaceConfig:
		return NewCLI(c), nil
	case *appconfig.WebInterfaceConfig:
		return NewWeb(c), nil
	case *appconfig.APIInterfaceConfig:
		return NewAPI(c), nil
	default:
		return nil, fmt.Errorf("no interface implementation for %s", cfg.TypeName())
	}
}
