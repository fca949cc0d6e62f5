package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/datapreview/internal/discover"
	"github.com/idelchi/datapreview/internal/integration"
	"github.com/idelchi/datapreview/internal/preview"
)

// request is a fully resolved invocation.
type request struct {
	path    string
	list    bool
	depth   int
	options preview.Options
}

// newLogger returns a logger writing to w, at debug level when enabled.
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	return log
}

// colorEnabled resolves a color mode against the writer it applies to.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func logic(ctx context.Context, stdout, stderr io.Writer, req request) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opt := req.options
	log := newLogger(stderr, opt.Debug)
	style := newStyles(colorEnabled(opt.Color, stdout))

	log.WithFields(logrus.Fields{
		"path":                   req.path,
		"enforce_max_size":       opt.EnforceMaxSize,
		"max_size":               opt.MaxSize,
		"resolve_symlinks":       opt.ResolveSymlinks,
		"exit_non_zero_on_error": opt.ExitNonZeroOnError,
	}).Debug("options")

	if req.list {
		files, err := discover.Run(ctx, discover.Options{Path: req.path, Depth: req.depth}, log)
		if err != nil {
			return fail(stderr, opt, err)
		}

		if opt.Output == "json" {
			return PrintFilesJSON(files, stdout)
		}

		return PrintFiles(files, stdout)
	}

	summary, err := preview.Run(ctx, req.path, opt, log)
	if err != nil {
		return fail(stderr, opt, err)
	}

	switch opt.Output {
	case "json":
		return PrintJSON(summary, stdout)
	case "table":
		return PrintTable(summary, stdout, style)
	default:
		return fmt.Errorf("unknown output format: %s", opt.Output)
	}
}

// fail applies the exit policy: the error is returned for a non-zero exit
// status, or reported here and swallowed when exiting with 0.
func fail(stderr io.Writer, opt preview.Options, err error) error {
	if opt.ExitNonZeroOnError {
		return err
	}

	Report(stderr, err, colorEnabled(opt.Color, stderr))

	return nil
}

// Report prints err as a labeled message, followed by its diagnostic trace if any.
func Report(w io.Writer, err error, colorize bool) {
	label := color.New(color.FgRed, color.Bold)
	faint := color.New(color.Faint)

	if colorize {
		label.EnableColor()
		faint.EnableColor()
	} else {
		label.DisableColor()
		faint.DisableColor()
	}

	label.Fprint(w, "Error:")
	fmt.Fprintf(w, " %v\n", err)

	if trace := preview.TraceOf(err); trace != "" {
		faint.Fprintln(w, trace)
	}
}

func (c CLI) printIntegration() error {
	executable, err := os.Executable()
	if err != nil {
		executable = "datapreview"
	}

	rendered, err := integration.Render(executable)
	if err != nil {
		return fmt.Errorf("rendering integration script: %w", err)
	}

	fmt.Fprintln(c.stdout, rendered)

	return nil
}
