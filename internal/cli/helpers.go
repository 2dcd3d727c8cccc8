package cli

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/re-cinq/instruct/internal/defaults"
	"github.com/re-cinq/instruct/internal/instruction"
	"github.com/re-cinq/instruct/internal/options"
	"github.com/re-cinq/instruct/internal/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// invocation is a loaded config plus the answers given on the command line.
type invocation struct {
	resolved *source.Resolved
	inst     *instruction.Instruction
	store    *defaults.FileStore
	answers  map[string]any
	// schemaDefaults is only filled in discovery mode.
	schemaDefaults map[string]any
}

func (in *invocation) Close() {
	if in.resolved != nil {
		_ = in.resolved.Close()
	}
}

// openStore returns the saved-answers store for the current settings.
func openStore() (*defaults.FileStore, error) {
	path, err := toolSettings.DefaultsPath()
	if err != nil {
		return nil, err
	}
	return defaults.NewFileStore(path), nil
}

// load resolves ref and parses the config it points at.
func load(cmd *cobra.Command, ref string) (*source.Resolved, *instruction.Instruction, error) {
	resolved, err := source.Resolve(cmd.Context(), ref)
	if err != nil {
		return nil, nil, err
	}
	inst, err := instruction.FromFile(resolved.Path)
	if err != nil {
		_ = resolved.Close()
		return nil, nil, err
	}
	zerolog.Ctx(cmd.Context()).Debug().Str("path", resolved.Path).Str("project", inst.ProjectID()).Msg("loaded config")
	return resolved, inst, nil
}

// prepareInvocation handles commands shaped "SOURCE [OPTIONS]": the config
// decides which flags exist, so flag parsing happens here instead of in
// cobra. Returns nil without error when help was printed.
func prepareInvocation(cmd *cobra.Command, args []string, mode options.Mode) (*invocation, error) {
	if len(args) == 0 || isHelp(args[0]) {
		if len(args) == 0 {
			_ = cmd.Help()
			return nil, fmt.Errorf("requires a SOURCE argument (file, directory or git URL)")
		}
		return nil, cmd.Help()
	}

	// Global flags may follow SOURCE; pick them up before loading so the
	// logger and defaults file are right.
	pre := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.SetOutput(io.Discard)
	pre.AddFlagSet(rootCmd.PersistentFlags())
	_ = pre.Parse(args[1:])
	if err := configure(cmd); err != nil {
		return nil, err
	}

	resolved, inst, err := load(cmd, args[0])
	if err != nil {
		return nil, err
	}
	in := &invocation{resolved: resolved, inst: inst}

	store, err := openStore()
	if err != nil {
		in.Close()
		return nil, err
	}
	in.store = store

	params := options.Params{Mode: mode, HostOS: runtime.GOOS}
	if mode == options.Invocation {
		params.Saved = in.saved(cmd)
	}
	flags, schemaDefaults := inst.Options(params)
	in.schemaDefaults = schemaDefaults

	b := newBinder(cmd.Name(), flags)
	b.addFlags(cmd.LocalFlags())
	b.addFlags(rootCmd.PersistentFlags())
	if err := b.parse(args[1:]); err != nil {
		in.Close()
		if errors.Is(err, pflag.ErrHelp) {
			printOptionHelp(cmd, inst, b)
			return nil, nil
		}
		return nil, err
	}

	answers, err := b.answers()
	if err != nil {
		in.Close()
		return nil, err
	}
	in.answers = answers
	return in, nil
}

// saved returns the stored answers for the config's project, if any.
func (in *invocation) saved(cmd *cobra.Command) map[string]any {
	id := in.inst.ProjectID()
	if id == "" {
		return nil
	}
	rec, err := in.store.Get(id)
	if err != nil {
		zerolog.Ctx(cmd.Context()).Warn().Err(err).Msg("ignoring saved defaults")
		return nil
	}
	return rec
}

func printOptionHelp(cmd *cobra.Command, inst *instruction.Instruction, b *binder) {
	out := cmd.OutOrStdout()
	doc := inst.Document()
	fmt.Fprintf(out, "Usage:\n  %s SOURCE [OPTIONS]\n", cmd.CommandPath())
	if title := doc.Schema.Title; title != "" {
		fmt.Fprintf(out, "\n%s\n", title)
	}
	if desc := doc.Schema.Description; desc != "" {
		fmt.Fprintf(out, "%s\n", desc)
	}
	fmt.Fprintf(out, "\nOptions:\n%s", b.usage())
}

func isHelp(arg string) bool {
	return arg == "-h" || arg == "--help"
}
