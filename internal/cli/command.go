package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/pflag"

	"github.com/idelchi/dirtally/internal/dirtally"
	"github.com/idelchi/dirtally/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Usage writes the command synopsis, description and examples to w,
// followed by the flag defaults.
func Usage(w io.Writer) {
	fmt.Fprintln(w, heredoc.Doc(`
		dirtally audits a directory tree and reports how many files live in each directory.

		Usage:

			dirtally [flags] [path]

		Positional Arguments:
		  path                   Directory to audit. Defaults to 'results' in the current directory.

		The report contains the grand total of regular files under the root, a summary
		of the root's immediate subdirectories, and an indented breakdown of every
		nested directory with its direct file count. Directories without any files are
		listed too.

		Examples:
		  dirtally                     # audit ./results
		  dirtally data/results        # audit a relative path
		  dirtally -l 2 /var/log       # limit the tree breakdown to two levels

		Flags:
	`))

	pflag.CommandLine.SetOutput(w)
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var options dirtally.Options

	allowedOutputs := []string{"text", "json"}

	pflag.IntVarP(&options.Levels, "levels", "l", 0, "Limit the tree breakdown to N levels (0=unlimited)")
	pflag.BoolVarP(&options.Totals, "totals", "t", false, "Include recursive totals per directory")
	pflag.StringSliceVarP(&options.Excludes, "exclude", "e", nil, "Regex patterns to exclude")
	pflag.StringVarP(&options.Output, "output", "o", "text", "Output format: text or json")
	pflag.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	pflag.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")
	pflag.BoolVarP(&options.Integration, "init", "i", false, "Output init script for shell usage")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = func() { Usage(os.Stdout) }
	pflag.Parse()

	if options.Version {
		//nolint:forbidigo // Version output to console
		fmt.Println(c.version)

		return nil
	}

	if options.Integration {
		rendered, err := integration.Render()
		if err != nil {
			return fmt.Errorf("rendering integration script: %w", err)
		}

		//nolint:forbidigo // Integration script output to console
		fmt.Println(rendered)

		return nil
	}

	if !slices.Contains(allowedOutputs, options.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	if options.Levels < 0 {
		return errors.New("levels cannot be negative")
	}

	if pflag.NArg() == 0 {
		options.Path = dirtally.DefaultRoot
	} else {
		options.Path = pflag.Args()[0]
	}

	return logic(options)
}
