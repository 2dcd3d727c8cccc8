package cli

import (
	"errors"
	"fmt"

	"github.com/re-cinq/instruct/internal/instruction"
	"github.com/re-cinq/instruct/internal/options"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show SOURCE [OPTIONS]",
	Short: "Print the installation instructions for your answers",
	Long: `Print the installation instructions for your answers.

SOURCE is an install config file, a directory containing install.cfg, or a
git URL. The options depend on the config; run "instruct show SOURCE --help"
to list them.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := prepareInvocation(cmd, args, options.Invocation)
		if err != nil || in == nil {
			return err
		}
		defer in.Close()

		out, err := render(in)
		if err != nil {
			return err
		}
		for _, line := range out.Lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// render validates and renders the invocation's answers. An error outcome
// becomes an error so the command exits non-zero.
func render(in *invocation) (instruction.Outcome, error) {
	out, err := in.inst.ValidateAndRender(in.answers)
	if err != nil {
		return out, err
	}
	if out.IsError {
		return out, errors.New(out.Text)
	}
	return out, nil
}
