package cmd

import (
	"fmt"
	"os"

	"github.com/kayz/fabula/internal/debug"
	"github.com/spf13/cobra"
)

var (
	schemaDir string
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "fabula",
	Short: "fabula schema-driven conversation runtime",
	Long: `fabula builds validated application sessions from schema files
and runs them behind a chosen front end.

Commands:
  fabula run       Construct a session and run its interface
  fabula validate  Construct a session document and report violations
  fabula apps      List runnable applications`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			debug.Enabled = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaDir, "schemas", "config/schemas",
		"Directory holding the schema documents")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"Print debug messages")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
