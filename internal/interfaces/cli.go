package interfaces

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kayz/fabula/internal/appconfig"
	"github.com/kayz/fabula/internal/engine"
	"github.com/spf13/cast"
)

// CLI is the terminal front end: a plain read/query/print loop.
type CLI struct {
	cfg *appconfig.CLIInterfaceConfig

	// In/Out default to stdin/stdout; tests swap them.
	In  io.Reader
	Out io.Writer
}

func NewCLI(cfg *appconfig.CLIInterfaceConfig) *CLI {
	return &CLI{cfg: cfg, In: os.Stdin, Out: os.Stdout}
}

func (c *CLI) Run(ctx context.Context, e *engine.Engine) error {
	if c.cfg.InterfaceMode == "verbose" {
		c.displayHistory(e.State.ChatHistory)
	}

	scanner := bufio.NewScanner(c.In)
	for {
		fmt.Fprint(c.Out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		reply, err := e.Query(ctx, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "%s%s\n", c.cfg.OutputPrefix, reply)
	}
}

func (c *CLI) displayHistory(history []any) {
	for _, entry := range history {
		m, err := cast.ToStringMapE(entry)
		if err != nil {
			continue
		}
		role := cast.ToString(m["role"])
		content := cast.ToString(m["content"])
		switch role {
		case "system":
			fmt.Fprintf(c.Out, "System: %s\n\n", content)
		case "user":
			fmt.Fprintf(c.Out, "You: %s\n\n", content)
		case "assistant":
			fmt.Fprintf(c.Out, "%s%s\n\n", c.cfg.OutputPrefix, content)
		}
	}
}
