package cli

import (
	"fmt"

	"github.com/re-cinq/instruct/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate SOURCE",
	Short: "Check an install config and report problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, inst, err := load(cmd, args[0])
		if err != nil {
			return err
		}
		defer resolved.Close()

		errs := config.Lint(inst.Document())
		if len(errs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		}

		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		return fmt.Errorf("%d problem(s) found", len(errs))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
