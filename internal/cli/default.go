package cli

import (
	"fmt"
	"sort"

	"github.com/re-cinq/instruct/internal/defaults"
	"github.com/re-cinq/instruct/internal/options"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Manage saved answers",
	Long: `Saved answers replace a config's own defaults the next time you run show or
install against it. They are stored per project ($id, or title) in a JSON
file in your user config directory.`,
}

var defaultAddCmd = &cobra.Command{
	Use:   "add SOURCE [OPTIONS]",
	Short: "Save answers for a config",
	Long: `Save the given answers for a config. Answers equal to the config's own
defaults are not kept; a project left with nothing is removed.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := prepareInvocation(cmd, args, options.Discovery)
		if err != nil || in == nil {
			return err
		}
		defer in.Close()

		id := in.inst.ProjectID()
		if id == "" {
			return defaults.ErrNoProjectID
		}
		stored, err := defaults.Add(in.store, id, in.answers, in.schemaDefaults)
		if err != nil {
			return err
		}
		if len(stored) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No saved answers left for %s.\n", id)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved answers for %s:\n", id)
		printRecord(cmd, stored)
		return nil
	},
}

var defaultRemoveCmd = &cobra.Command{
	Use:   "remove SOURCE [OPTIONS]",
	Short: "Forget saved answers for a config",
	Long: `Forget saved answers. With options, only those answers are forgotten
(their values are ignored); without, the whole project is.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := prepareInvocation(cmd, args, options.Discovery)
		if err != nil || in == nil {
			return err
		}
		defer in.Close()

		id := in.inst.ProjectID()
		if id == "" {
			return defaults.ErrNoProjectID
		}
		if len(in.answers) == 0 {
			found, err := in.store.Delete(id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No saved answers for %s.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed saved answers for %s.\n", id)
			return nil
		}

		err = in.store.Update(id, func(cur map[string]any) map[string]any {
			for k := range in.answers {
				delete(cur, k)
			}
			return cur
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d saved answer(s) for %s.\n", len(in.answers), id)
		return nil
	},
}

var defaultListCmd = &cobra.Command{
	Use:   "list [SOURCE]",
	Short: "Show saved answers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			resolved, inst, err := load(cmd, args[0])
			if err != nil {
				return err
			}
			defer resolved.Close()
			rec, err := store.Get(inst.ProjectID())
			if err != nil {
				return err
			}
			printRecord(cmd, rec)
			return nil
		}

		ids, err := store.List()
		if err != nil {
			return err
		}
		all := make(map[string]map[string]any, len(ids))
		for _, id := range ids {
			if all[id], err = store.Get(id); err != nil {
				return err
			}
		}
		if len(all) == 0 {
			return nil
		}
		out, err := yaml.Marshal(all)
		if err != nil {
			return fmt.Errorf("encoding defaults: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	defaultCmd.AddCommand(defaultAddCmd, defaultRemoveCmd, defaultListCmd)
	rootCmd.AddCommand(defaultCmd)
}

func printRecord(cmd *cobra.Command, rec map[string]any) {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v\n", k, rec[k])
	}
}
