package appconfig

import (
	"fmt"

	"github.com/kayz/fabula/internal/construct"
	"github.com/spf13/cast"
)

// TransformationStep names one text transformation and its fixed parameters.
type TransformationStep struct {
	Name   string
	Params map[string]any
}

// TransformationConfig lists the transformation pipelines applied to user
// input before prompting and to LLM output before display.
type TransformationConfig struct {
	UserInput []TransformationStep
	LLMOutput []TransformationStep
}

func (c *TransformationConfig) TypeName() string { return TypeTransformation }

func (c *TransformationConfig) CanonicalDoc() map[string]any {
	return map[string]any{
		"user_input_transformations": stepsToDoc(c.UserInput),
		"llm_output_transformations": stepsToDoc(c.LLMOutput),
	}
}

func stepsToDoc(steps []TransformationStep) []any {
	out := make([]any, len(steps))
	for i, step := range steps {
		entry := map[string]any{"name": step.Name}
		if len(step.Params) > 0 {
			entry["params"] = step.Params
		}
		out[i] = entry
	}
	return out
}

var transformationShape = construct.Shape{
	Fields: []construct.Field{
		{Name: "user_input_transformations", Kind: construct.List},
		{Name: "llm_output_transformations", Kind: construct.List},
	},
}

func makeTransformationConfig(doc map[string]any) (construct.Node, error) {
	userSteps, err := stepsFromDoc(doc, "user_input_transformations")
	if err != nil {
		return nil, err
	}
	llmSteps, err := stepsFromDoc(doc, "llm_output_transformations")
	if err != nil {
		return nil, err
	}
	return &TransformationConfig{UserInput: userSteps, LLMOutput: llmSteps}, nil
}

func stepsFromDoc(doc map[string]any, key string) ([]TransformationStep, error) {
	raw, err := listField(doc, key)
	if err != nil {
		return nil, err
	}
	steps := make([]TransformationStep, 0, len(raw))
	for i, item := range raw {
		entry, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		name, err := cast.ToStringE(entry["name"])
		if err != nil || name == "" {
			return nil, fmt.Errorf("%s[%d]: transformation name is required", key, i)
		}
		step := TransformationStep{Name: name}
		if params, ok := entry["params"]; ok && params != nil {
			step.Params, err = cast.ToStringMapE(params)
			if err != nil {
				return nil, fmt.Errorf("%s[%d] params: %w", key, i, err)
			}
		}
		steps = append(steps, step)
	}
	return steps, nil
}
