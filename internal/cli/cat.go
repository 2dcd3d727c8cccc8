package cli

import (
	"fmt"
	"os"

	"github.com/re-cinq/instruct/internal/source"
	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat SOURCE",
	Short: "Print the raw install config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := source.Resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer resolved.Close()

		data, err := os.ReadFile(resolved.Path)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}
