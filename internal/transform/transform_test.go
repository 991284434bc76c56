package transform

import (
	"testing"

	"github.com/kayz/fabula/internal/appconfig"
)

func TestCleanupWhitespace(t *testing.T) {
	got := cleanupWhitespace("  hello \t world \n", nil, nil)
	if got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestPrependAppend(t *testing.T) {
	got := prependPrefix("text", nil, map[string]any{"prefix": ">> "})
	if got != ">> text" {
		t.Fatalf("got %q", got)
	}
	got = appendSuffix("text", nil, map[string]any{"suffix": "!"})
	if got != "text!" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncateLength(t *testing.T) {
	got := truncateLength("abcdef", nil, map[string]any{"max_chars": 3})
	if got != "abc" {
		t.Fatalf("got %q", got)
	}
	// No limit or text shorter than the limit passes through.
	if got := truncateLength("abc", nil, map[string]any{"max_chars": 10}); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := truncateLength("abc", nil, nil); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestKnown(t *testing.T) {
	for _, name := range []string{"cleanup_whitespace", "prepend_prefix", "append_suffix", "truncate_length"} {
		if !Known(name) {
			t.Fatalf("%s should be known", name)
		}
	}
	if Known("reverse_text") {
		t.Fatalf("reverse_text should not be known")
	}
}

func TestManagerPipelines(t *testing.T) {
	m := NewManager(&appconfig.TransformationConfig{
		UserInput: []appconfig.TransformationStep{
			{Name: "cleanup_whitespace"},
			{Name: "truncate_length", Params: map[string]any{"max_chars": 5}},
		},
		LLMOutput: []appconfig.TransformationStep{
			{Name: "prepend_prefix", Params: map[string]any{"prefix": "A: "}},
		},
	})

	if got := m.ApplyUserInput("  hello   world  ", nil); got != "hello" {
		t.Fatalf("user input pipeline: got %q", got)
	}
	if got := m.ApplyLLMOutput("reply", nil); got != "A: reply" {
		t.Fatalf("llm output pipeline: got %q", got)
	}
}

func TestManagerSkipsUnknownSteps(t *testing.T) {
	m := NewManager(&appconfig.TransformationConfig{
		UserInput: []appconfig.TransformationStep{
			{Name: "no_such_transformation"},
			{Name: "append_suffix", Params: map[string]any{"suffix": "."}},
		},
	})
	if got := m.ApplyUserInput("text", nil); got != "text." {
		t.Fatalf("got %q", got)
	}
}
