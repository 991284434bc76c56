package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kayz/fabula/internal/appconfig"
	"github.com/kayz/fabula/internal/engine"
	"github.com/kayz/fabula/internal/interfaces"
	"github.com/kayz/fabula/internal/persist"
	"github.com/kayz/fabula/internal/schema"
	"github.com/spf13/cobra"
)

var (
	runApp    string
	runUI     string
	runInput  string
	runOutput string
	runDB     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Construct a session and run its interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		builder := appconfig.NewEngine(schema.NewDirStore(schemaDir))

		var store *persist.Store
		if runDB != "" {
			var err error
			store, err = persist.NewStore(runDB)
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			defer store.Close()
		}

		e, err := engine.Load(builder, engine.LoadOptions{
			AppName:       runApp,
			InterfaceType: runUI,
			InputPath:     runInput,
			OutputPath:    runOutput,
			Store:         store,
		})
		if err != nil {
			return err
		}

		front, err := interfaces.New(e.Config.Interface)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return front.Run(ctx, e)
	},
}

func init() {
	runCmd.Flags().StringVar(&runApp, "app", "",
		"Application to run (or set app_name in the input file)")
	runCmd.Flags().StringVar(&runUI, "ui", "",
		"Interface override: cli, webui, api")
	runCmd.Flags().StringVar(&runInput, "input", "",
		"Session document to load (.yml or .json)")
	runCmd.Flags().StringVar(&runOutput, "output", "",
		"Path to save the session document after each turn")
	runCmd.Flags().StringVar(&runDB, "db", "",
		"SQLite database for session history (disabled when empty)")
	rootCmd.AddCommand(runCmd)
}
