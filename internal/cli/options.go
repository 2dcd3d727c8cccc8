package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/re-cinq/instruct/internal/options"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var optionsFormat string

// optionListing is the machine-readable description of a config's options.
type optionListing struct {
	Project     string         `json:"project,omitempty" yaml:"project,omitempty"`
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Options     []options.Flag `json:"options" yaml:"options"`
	Defaults    map[string]any `json:"defaults" yaml:"defaults"`
}

var optionsCmd = &cobra.Command{
	Use:   "options SOURCE",
	Short: "List the options of an install config",
	Long: `List the options an install config asks for, with their choices and the
defaults the config's author chose, as JSON or YAML. Intended for tools that
build their own interface on top of instruct.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, inst, err := load(cmd, args[0])
		if err != nil {
			return err
		}
		defer resolved.Close()

		flags, schemaDefaults := inst.Options(options.Params{Mode: options.Discovery, HostOS: runtime.GOOS})
		doc := inst.Document()
		listing := optionListing{
			Project:     inst.ProjectID(),
			Title:       doc.Schema.Title,
			Description: doc.Schema.Description,
			Options:     flags,
			Defaults:    schemaDefaults,
		}

		var out []byte
		switch optionsFormat {
		case "json":
			out, err = json.MarshalIndent(listing, "", "  ")
			out = append(out, '\n')
		case "yaml":
			out, err = yaml.Marshal(listing)
		default:
			return fmt.Errorf("unknown format %q (use json or yaml)", optionsFormat)
		}
		if err != nil {
			return fmt.Errorf("encoding options: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	optionsCmd.Flags().StringVar(&optionsFormat, "format", "json", "output format (json or yaml)")
	rootCmd.AddCommand(optionsCmd)
}
