package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const explainText = `instruct - installation instructions from a schema and a template

PURPOSE
  instruct reads an install config and turns a user's answers (operating
  system, package manager, hardware...) into installation instructions, or
  into an error when the combination is not supported. It can also run the
  instructions for you.

SOURCES
  Every command that takes SOURCE accepts:
  - a path to a config file;
  - a directory: install.cfg at its root, or else the single install.cfg
    found below it (.git and .gitignore'd paths are skipped);
  - a git URL (http://, https://, git://, ssh://, ftp://, ftps://), cloned
    shallowly into a temporary directory and searched like a directory.

COMMANDS
  show      Print the instructions for the given answers, one per line.
  install   Run each instruction line through the shell (sh -c, or cmd /C on
            Windows), stopping at the first failure. -v streams output,
            --tty runs commands under a pseudo-terminal, --dry-run only
            prints them. Prints "Installation successful." at the end.
  cat       Print the raw config.
  options   List the options as JSON or YAML (--format), with the
            author's defaults.
  default   add: save answers for the config's project; answers equal to
            the config's defaults are dropped.
            remove: forget all saved answers, or only the options given.
            list: print saved answers, for one config or all projects.
  schema    Print the JSON Schema for the schema section of a config.
  validate  Load a config and report authoring problems, or print "valid".
  explain   Print this reference.
  version   Print the version.

  "instruct show SOURCE --help" lists the options of that config.

CONFIG FORMAT
  A config is a schema, a line of six or more hyphens, and a template:

    $id: https://example.com/my-project
    properties:
      packager:
        enum: [pip, conda]
        default: pip
    required: [packager]
    ------
    {{ .packager }} install my-project

  The schema is JSON or YAML (JSON is tried first) and must be a valid JSON
  Schema (Draft 2020-12). It may instead sit under a "schema" key next to
  "pretty" and "description" maps, which give human titles and help text
  for option names and enum values.

OPTIONS
  - Each property becomes a flag: underscores and spaces turn into hyphens
    (build_type -> --build-type).
  - enum properties accept one of their values, matched case-insensitively;
    values may contain spaces. Arrays whose items have an enum accept the
    flag several times.
  - A property is required when listed in "required" and it has no default.
    A required boolean without default is answered with --x or --no-x.
  - Properties defined under allOf/anyOf/oneOf count like top-level ones.
    Properties defined only under then/else are marked [Conditional].
  - An option named os without a default defaults to the running system.
  - Saved answers (instruct default add) replace the config's defaults.

TEMPLATE
  Go text/template syntax with the input as data. Every option is present:
  missing answers take the schema default, or are empty. Referring to an
  unknown key is an error. Besides the usual string and list helpers
  (hasPrefix, replace, join, dict, ...), templates can use:
    raise "message"     stop and report message as an unsupported
                        combination of answers
    command             join a multi-line command into one line:
                        {{ include "pip" . | command }}
    include NAME DATA   render a {{ define "NAME" }} block to a string
  Output is split into lines; blank lines are dropped and runs of
  whitespace collapsed. Each line is one instruction.

EXIT STATUS
  0 on success; 1 when the config is broken, the answers are invalid, the
  template raised an error, or an installation command failed.

ENVIRONMENT
  INSTRUCT_LOG_LEVEL      diagnostic log level (default warn)
  INSTRUCT_LOG_FORMAT     console or json
  INSTRUCT_DEFAULTS_FILE  where saved answers are kept
  The matching --log-level, --log-format and --defaults-file flags win.`

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Print the reference for instruct and its config format",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), explainText)
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
