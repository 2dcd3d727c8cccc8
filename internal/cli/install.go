package cli

import (
	"errors"
	"fmt"

	"github.com/re-cinq/instruct/internal/options"
	"github.com/re-cinq/instruct/internal/runner"
	"github.com/spf13/cobra"
)

var (
	installVerbose bool
	installTTY     bool
	installDryRun  bool
)

func init() {
	installCmd.Flags().BoolVarP(&installVerbose, "verbose", "v", false, "show each command and its output as it runs")
	installCmd.Flags().BoolVar(&installTTY, "tty", false, "run commands under a pseudo-terminal")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "print the commands without running them")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install SOURCE [OPTIONS] [-v] [--tty] [--dry-run]",
	Short: "Run the installation instructions for your answers",
	Long: `Render the instructions for your answers and run each line as a shell
command, stopping at the first failure. The failing command and its output
are printed.`,
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

		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
		if installDryRun {
			for _, line := range out.Lines {
				fmt.Fprintf(stdout, "$ %s\n", line)
			}
			return nil
		}

		opts := runner.Options{
			Stream: installVerbose,
			TTY:    installTTY,
			Stdout: stdout,
			Stderr: stderr,
		}
		if installVerbose {
			opts.OnStart = func(line string) {
				fmt.Fprintf(stdout, "$ %s\n", line)
			}
		}
		if _, err := runner.New(opts).RunAll(cmd.Context(), out.Lines); err != nil {
			var exitErr *runner.ExitError
			if errors.As(err, &exitErr) {
				fmt.Fprintf(stderr, "Command: %s\n", exitErr.Result.Command)
				if !installVerbose {
					fmt.Fprintf(stderr, "Stdout:\n%s\nStderr:\n%s\n", exitErr.Result.Stdout, exitErr.Result.Stderr)
				}
			}
			return fmt.Errorf("installation failed: %w", err)
		}
		fmt.Fprintln(stdout, "Installation successful.")
		return nil
	},
}
