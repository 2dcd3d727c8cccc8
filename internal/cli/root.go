package cli

import (
	"context"
	"os"

	"github.com/re-cinq/instruct/internal/logging"
	"github.com/re-cinq/instruct/internal/settings"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"

	logLevel     string
	logFormat    string
	defaultsFile string

	// toolSettings is resolved from the environment and global flags before
	// each command runs.
	toolSettings = settings.Default()
)

var rootCmd = &cobra.Command{
	Use:   "instruct",
	Short: "Installation instructions from a schema and a template",
	Long: `instruct reads an install config (a JSON Schema describing the questions,
a line of hyphens, and a template) and turns your answers into installation
instructions. Run "instruct explain" for the full reference.`,
	SilenceUsage: true,
}

func init() {
	// Assigned here rather than in the literal: configure reads rootCmd,
	// which would otherwise form an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return configure(cmd)
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "", "diagnostic log level (trace, debug, info, warn, error, disabled) [$"+settings.EnvLogLevel+"]")
	pf.StringVar(&logFormat, "log-format", "", "diagnostic log format (console, json) [$"+settings.EnvLogFormat+"]")
	pf.StringVar(&defaultsFile, "defaults-file", "", "file holding saved answers [$"+settings.EnvDefaultsFile+"]")
}

// configure resolves tool settings and stores a logger in the command's
// context. Commands that parse their own flags call it again afterwards.
func configure(cmd *cobra.Command) error {
	s := settings.FromEnv(os.LookupEnv)
	pf := rootCmd.PersistentFlags()
	if pf.Changed("log-level") {
		s.LogLevel = logLevel
	}
	if pf.Changed("log-format") {
		s.LogFormat = logFormat
	}
	if pf.Changed("defaults-file") {
		s.DefaultsFile = defaultsFile
	}
	if err := s.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cmd.ErrOrStderr(), s.LogLevel, s.LogFormat)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(log.WithContext(ctx))
	toolSettings = s
	return nil
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
