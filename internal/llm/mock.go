package llm

import (
	"context"

	"github.com/kayz/fabula/internal/appconfig"
)

// MockBackend is a canned backend for tests and offline runs.
type MockBackend struct {
	Reply string
	// Calls records every prompt passed to Generate.
	Calls []string
}

func (m *MockBackend) Name() string { return "mock" }

func (m *MockBackend) Generate(_ context.Context, prompt string, _ []Message, _ *appconfig.GenerationConfig) (string, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Reply != "" {
		return m.Reply, nil
	}
	return "mock response", nil
}
