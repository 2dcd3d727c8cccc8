package cli

import (
	"fmt"

	"github.com/re-cinq/instruct/internal/config"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output JSON Schema for the schema section of install configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), string(config.Schema()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
