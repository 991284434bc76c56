package transform

import (
	"strings"

	"github.com/kayz/fabula/internal/appconfig"
	"github.com/kayz/fabula/internal/debug"
	"github.com/spf13/cast"
)

// Func is a pure text transformation: (text, state, params) -> text. State
// is read-only context; params are the fixed parameters from configuration.
type Func func(text string, state map[string]any, params map[string]any) string

// funcs is the closed table of named transformations selectable from
// configuration.
var funcs = map[string]Func{
	"cleanup_whitespace": cleanupWhitespace,
	"prepend_prefix":     prependPrefix,
	"append_suffix":      appendSuffix,
	"truncate_length":    truncateLength,
}

// Known reports whether a transformation name is registered.
func Known(name string) bool {
	_, ok := funcs[name]
	return ok
}

func cleanupWhitespace(text string, _ map[string]any, _ map[string]any) string {
	return strings.Join(strings.Fields(text), " ")
}

func prependPrefix(text string, _ map[string]any, params map[string]any) string {
	return cast.ToString(params["prefix"]) + text
}

func appendSuffix(text string, _ map[string]any, params map[string]any) string {
	return text + cast.ToString(params["suffix"])
}

func truncateLength(text string, _ map[string]any, params map[string]any) string {
	max := cast.ToInt(params["max_chars"])
	if max <= 0 || len(text) <= max {
		return text
	}
	return text[:max]
}

// Manager applies the transformation pipelines declared in configuration.
type Manager struct {
	cfg *appconfig.TransformationConfig
}

func NewManager(cfg *appconfig.TransformationConfig) *Manager {
	return &Manager{cfg: cfg}
}

// ApplyUserInput runs the user input pipeline.
func (m *Manager) ApplyUserInput(text string, state map[string]any) string {
	return applySteps(m.cfg.UserInput, text, state)
}

// ApplyLLMOutput runs the LLM output pipeline.
func (m *Manager) ApplyLLMOutput(text string, state map[string]any) string {
	return applySteps(m.cfg.LLMOutput, text, state)
}

func applySteps(steps []appconfig.TransformationStep, text string, state map[string]any) string {
	for _, step := range steps {
		fn, ok := funcs[step.Name]
		if !ok {
			// Unknown names are skipped rather than fatal; the text passes
			// through unchanged.
			debug.Log("transformation %q not found, skipping", step.Name)
			continue
		}
		text = fn(text, state, step.Params)
	}
	return text
}
