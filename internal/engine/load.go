package engine

import (
	"fmt"
	"sort"

	"github.com/kayz/fabula/internal/construct"
	"github.com/kayz/fabula/internal/llm"
	"github.com/kayz/fabula/internal/persist"
	"github.com/spf13/cast"
)

// apps is the closed set of runnable applications. Each app shares the
// engine; they differ only in configuration and saved state.
var apps = map[string]struct{}{
	"chat": {},
}

// AppNames lists the runnable applications.
func AppNames() []string {
	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadOptions describes a session to start from an input document.
type LoadOptions struct {
	AppName       string
	InterfaceType string
	InputPath     string
	OutputPath    string
	Backend       llm.Backend
	Store         *persist.Store
}

// Load reads the input document (if any), reconciles command line overrides
// with its contents, and constructs the session.
func Load(builder *construct.Engine, opts LoadOptions) (*Engine, error) {
	input := map[string]any{}
	if opts.InputPath != "" {
		var err error
		input, err = persist.LoadDocument(opts.InputPath)
		if err != nil {
			return nil, err
		}
	}

	appName := opts.AppName
	if fromDoc := cast.ToString(input["app_name"]); fromDoc != "" {
		if appName == "" {
			appName = fromDoc
		} else if appName != fromDoc {
			return nil, fmt.Errorf("app %q from input file conflicts with requested app %q", fromDoc, appName)
		}
	}
	if appName == "" {
		return nil, fmt.Errorf("no app specified; pass one or set app_name in the input file")
	}
	if _, ok := apps[appName]; !ok {
		return nil, fmt.Errorf("unknown app %q, valid apps are %v", appName, AppNames())
	}

	configData := map[string]any{}
	if raw, ok := input["config"]; ok && raw != nil {
		var err error
		configData, err = cast.ToStringMapE(raw)
		if err != nil {
			return nil, fmt.Errorf("config section: %w", err)
		}
	}
	if opts.InterfaceType != "" {
		configData["interface_type"] = opts.InterfaceType
	}

	stateData := map[string]any{}
	if raw, ok := input["state"]; ok && raw != nil {
		var err error
		stateData, err = cast.ToStringMapE(raw)
		if err != nil {
			return nil, fmt.Errorf("state section: %w", err)
		}
	}

	return New(builder, Options{
		AppName:    appName,
		ConfigData: configData,
		StateData:  stateData,
		OutputPath: opts.OutputPath,
		Backend:    opts.Backend,
		Store:      opts.Store,
	})
}
