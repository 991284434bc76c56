package cmd

import (
	"fmt"

	"github.com/kayz/fabula/internal/appconfig"
	"github.com/kayz/fabula/internal/persist"
	"github.com/kayz/fabula/internal/schema"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Construct a session document and report violations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := persist.LoadDocument(args[0])
		if err != nil {
			return err
		}

		builder := appconfig.NewEngine(schema.NewDirStore(schemaDir))

		configData := map[string]any{}
		if raw, ok := input["config"]; ok && raw != nil {
			configData, err = cast.ToStringMapE(raw)
			if err != nil {
				return fmt.Errorf("config section: %w", err)
			}
		}
		if name := cast.ToString(input["app_name"]); name != "" {
			configData["app_name"] = name
		}
		if _, err := appconfig.BuildConfig(builder, configData); err != nil {
			return fmt.Errorf("config: %w", err)
		}

		stateData := map[string]any{}
		if raw, ok := input["state"]; ok && raw != nil {
			stateData, err = cast.ToStringMapE(raw)
			if err != nil {
				return fmt.Errorf("state section: %w", err)
			}
		}
		if _, err := appconfig.BuildState(builder, stateData); err != nil {
			return fmt.Errorf("state: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
