package engine

import (
	"context"
	"fmt"

	"github.com/kayz/fabula/internal/appconfig"
	"github.com/kayz/fabula/internal/construct"
	"github.com/kayz/fabula/internal/debug"
	"github.com/kayz/fabula/internal/llm"
	"github.com/kayz/fabula/internal/persist"
	"github.com/kayz/fabula/internal/transform"
	"github.com/spf13/cast"
)

// Engine drives one conversation or game session: it owns the constructed
// configuration tree and state, talks to the LLM backend and applies the
// configured text transformations around each turn.
type Engine struct {
	AppName string
	Config  *appconfig.Config
	State   *appconfig.State

	backend    llm.Backend
	transforms *transform.Manager
	store      *persist.Store
	sessionID  string
	outputPath string
}

// Options configures engine creation. ConfigData and StateData are partial
// documents; the construction engine fills in the rest from schemas.
type Options struct {
	AppName    string
	ConfigData map[string]any
	StateData  map[string]any
	OutputPath string

	// Backend overrides the backend derived from configuration. Used by
	// tests and offline runs.
	Backend llm.Backend

	// Store, when set, mirrors every turn into the session store.
	Store *persist.Store
}

// New constructs the configuration and state trees and wires up the session.
func New(builder *construct.Engine, opts Options) (*Engine, error) {
	data := opts.ConfigData
	if data == nil {
		data = map[string]any{}
	}
	if opts.AppName != "" {
		if existing, ok := data["app_name"]; ok && cast.ToString(existing) != opts.AppName {
			return nil, fmt.Errorf("app_name %q in config conflicts with requested app %q", existing, opts.AppName)
		}
		data["app_name"] = opts.AppName
	}

	cfg, err := appconfig.BuildConfig(builder, data)
	if err != nil {
		return nil, fmt.Errorf("build config: %w", err)
	}
	state, err := appconfig.BuildState(builder, opts.StateData)
	if err != nil {
		return nil, fmt.Errorf("build state: %w", err)
	}

	backend := opts.Backend
	if backend == nil {
		backend, err = llm.NewBackend(cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("create backend: %w", err)
		}
	}

	e := &Engine{
		AppName:    cfg.AppName,
		Config:     cfg,
		State:      state,
		backend:    backend,
		transforms: transform.NewManager(cfg.Transformation),
		store:      opts.Store,
		outputPath: opts.OutputPath,
	}

	if e.store != nil {
		sess, err := e.store.CreateSession(cfg.AppName)
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		e.sessionID = sess.ID
	}

	return e, nil
}

// SessionID returns the persistent session id, if a store is attached.
func (e *Engine) SessionID() string { return e.sessionID }

// Query runs one turn: transform the input, generate a reply, transform the
// output, and record both in the state history.
func (e *Engine) Query(ctx context.Context, userInput string) (string, error) {
	stateDoc := e.State.CanonicalDoc()

	processed := e.transforms.ApplyUserInput(userInput, stateDoc)
	debug.Log("processed user input: %q", processed)

	reply, err := e.backend.Generate(ctx, processed, e.history(), e.Config.LLM.Generation)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	output := e.transforms.ApplyLLMOutput(reply, stateDoc)

	e.State.ChatHistory = append(e.State.ChatHistory,
		map[string]any{"role": "user", "content": processed},
		map[string]any{"role": "assistant", "content": output},
	)
	e.State.LLMIOHistory = append(e.State.LLMIOHistory,
		map[string]any{"role": "user", "content": userInput},
		map[string]any{"role": "assistant", "content": reply},
	)

	if e.store != nil && e.sessionID != "" {
		if err := e.store.AddMessage(e.sessionID, "user", processed); err != nil {
			return "", fmt.Errorf("persist user turn: %w", err)
		}
		if err := e.store.AddMessage(e.sessionID, "assistant", output); err != nil {
			return "", fmt.Errorf("persist assistant turn: %w", err)
		}
	}

	if e.outputPath != "" {
		if err := e.Save(e.outputPath); err != nil {
			return "", fmt.Errorf("autosave: %w", err)
		}
	}

	return output, nil
}

// history converts the chat history into backend messages.
func (e *Engine) history() []llm.Message {
	messages := make([]llm.Message, 0, len(e.State.ChatHistory))
	for _, entry := range e.State.ChatHistory {
		m, err := cast.ToStringMapE(entry)
		if err != nil {
			continue
		}
		messages = append(messages, llm.Message{
			Role:    cast.ToString(m["role"]),
			Content: cast.ToString(m["content"]),
		})
	}
	return messages
}

// Save serializes the whole session back to a plain document and writes it
// to path. The document round-trips through New.
func (e *Engine) Save(path string) error {
	doc := map[string]any{
		"app_name": e.AppName,
		"config":   e.Config.CanonicalDoc(),
		"state":    e.State.CanonicalDoc(),
	}
	return persist.SaveDocument(doc, path)
}
