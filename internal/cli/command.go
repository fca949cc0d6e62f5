package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/datapreview/internal/config"
	"github.com/idelchi/datapreview/internal/preview"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version, stdout: os.Stdout, stderr: os.Stderr}
}

// DefaultMaxSize is the default value of the --max-size flag.
const DefaultMaxSize = "100MiB"

// flags holds the raw command-line values before they are folded into
// preview.Options.
type flags struct {
	maxSize           string
	noSizeLimit       bool
	noResolveSymlinks bool
	exitZero          bool
	lenient           bool
	rows              int
	samples           int
	output            string
	color             string
	configPath        string
	list              bool
	depth             int
	debug             bool
	version           bool
	integration       bool

	// colorMode is the color setting in effect once options are resolved,
	// used to report errors returned by the command.
	colorMode string
}

// register binds the flags to fs.
func (f *flags) register(fs *pflag.FlagSet) {
	defaults := preview.DefaultOptions()

	fs.StringVar(&f.maxSize, "max-size", DefaultMaxSize, "Maximum file size (e.g., 100MiB, 1GB)")
	fs.BoolVar(&f.noSizeLimit, "no-size-limit", false, "Do not enforce a maximum file size")
	fs.BoolVar(&f.noResolveSymlinks, "no-resolve-symlinks", false, "Use the path as given instead of resolving symlinks")
	fs.BoolVar(&f.exitZero, "exit-zero", false, "Report errors but exit with status 0")
	fs.BoolVar(&f.lenient, "lenient", false, "Shorthand for --no-size-limit --no-resolve-symlinks --exit-zero")
	fs.IntVarP(&f.rows, "rows", "n", defaults.PreviewRows, "Number of rows in the data preview")
	fs.IntVar(&f.samples, "samples", defaults.SampleValues, "Number of sample values per column")
	fs.StringVarP(&f.output, "output", "o", defaults.Output, "Output format: table or json")
	fs.StringVar(&f.color, "color", defaults.Color, "Colored output: auto, always or never")
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML configuration file")
	fs.BoolVarP(&f.list, "list", "l", false, "List previewable files below the given directory")
	fs.IntVarP(&f.depth, "depth", "d", 0, "Maximum traversal depth for --list (0=unlimited)")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug output")
	fs.BoolVarP(&f.version, "version", "v", false, "Show version and exit")
	fs.BoolVarP(&f.integration, "init", "i", false, "Output init script for shell usage")

	fs.SortFlags = false
}

// options folds defaults, the lenient preset, the configuration file and
// explicitly set flags, in increasing order of precedence.
func (f *flags) options(fs *pflag.FlagSet) (preview.Options, error) {
	opt := preview.DefaultOptions()

	if f.lenient {
		opt = preview.LenientOptions()
	}

	if f.configPath != "" {
		file, err := config.Load(f.configPath)
		if err != nil {
			return opt, err
		}

		if err := file.Apply(&opt); err != nil {
			return opt, err
		}
	}

	if fs.Changed("max-size") {
		size, err := preview.ParseSize(f.maxSize)
		if err != nil {
			return opt, fmt.Errorf("invalid max-size: %w", err)
		}

		opt.MaxSize = size
		opt.EnforceMaxSize = true
	}

	if f.noSizeLimit {
		opt.EnforceMaxSize = false
	}

	if f.noResolveSymlinks {
		opt.ResolveSymlinks = false
	}

	if f.exitZero {
		opt.ExitNonZeroOnError = false
	}

	if fs.Changed("rows") {
		opt.PreviewRows = f.rows
	}

	if fs.Changed("samples") {
		opt.SampleValues = f.samples
	}

	if fs.Changed("output") {
		opt.Output = f.output
	}

	if fs.Changed("color") {
		opt.Color = f.color
	}

	opt.Debug = f.debug

	if err := config.Validate(opt); err != nil {
		return opt, err
	}

	if f.depth < 0 {
		return opt, errors.New("depth cannot be negative")
	}

	return opt, nil
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	cmd, _ := c.command()

	return cmd
}

func (c CLI) command() (*cobra.Command, *flags) {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "datapreview [flags] <file>",
		Short: "Summarize a CSV or JSON file",
		Long: heredoc.Doc(`
			datapreview loads a CSV or JSON file and prints a summary: file information,
			per-column statistics and a preview of the first rows.

			Positional Arguments:
			  file                   The data file to preview (.csv, .json, optionally .gz or .zst).
			                         With --list, the directory to search instead.

			JSON documents are flattened into a table. A single-key object whose value is
			a list is unwrapped and the list elements become the rows; nested objects become
			dotted column names.

			By default files above 100 MiB are rejected, symlinks are resolved and any error
			ends with exit status 1. --lenient relaxes all three.

			The '-i' flag prints a zsh integration script that previews files picked with 'fzf'.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if f.version || f.integration {
				return nil
			}

			if len(args) != 1 {
				return &preview.Error{
					Kind: preview.KindUsage,
					Err:  fmt.Errorf("expected exactly one file path, got %d arguments", len(args)),
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.version {
				fmt.Fprintln(c.stdout, c.version)

				return nil
			}

			if f.integration {
				return c.printIntegration()
			}

			opt, err := f.options(cmd.Flags())
			if err != nil {
				return err
			}

			f.colorMode = opt.Color

			return logic(cmd.Context(), c.stdout, c.stderr, request{
				path:    args[0],
				list:    f.list,
				depth:   f.depth,
				options: opt,
			})
		},
	}

	f.register(cmd.Flags())

	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	return cmd, f
}

// Execute runs the CLI with the process arguments. Errors are reported to
// stderr before they are returned.
func (c CLI) Execute() error {
	return c.execute(context.Background(), os.Args[1:])
}

func (c CLI) execute(ctx context.Context, args []string) error {
	if args == nil {
		args = []string{}
	}

	cmd, f := c.command()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	mode := f.colorMode
	if mode == "" {
		mode = f.color
	}

	Report(c.stderr, err, colorEnabled(mode, c.stderr))

	if preview.KindOf(err) == preview.KindUsage {
		fmt.Fprint(c.stderr, cmd.UsageString())
	}

	return err
}
