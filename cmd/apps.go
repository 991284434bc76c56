package cmd

import (
	"fmt"

	"github.com/kayz/fabula/internal/engine"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List runnable applications",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range engine.AppNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(appsCmd)
}
