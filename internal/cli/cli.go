package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/dunegen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ErrMissingFlavor is the message reported when FLAVOR is absent.
const ErrMissingFlavor = "missing required argument: FLAVOR"

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Usage and flag errors are written to errW; stdout is reserved for the
// generated rules.
func Parse(args []string, errW io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("dunegen", flag.ContinueOnError)
	flagSet.SetOutput(errW)

	flagSet.Usage = func() {
		fmt.Fprint(errW, `
dunegen - Prints the dune rules of the JsOfOCairo package.

Usage:
  dunegen [options] FLAVOR

Arguments:
  FLAVOR
    "coverage" adds bisect_ppx to the library's preprocessors. Any other
    value, including "", selects the default rules.

Options:
`)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", app.DefaultLogFormat, "Log output format (written to stderr). Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", app.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		return nil, false, &ExitError{Code: 2, Message: ErrMissingFlavor}
	}
	flavor := flagSet.Arg(0)
	if flagSet.NArg() > 1 {
		slog.Debug("Ignoring extra arguments.", "extra", flagSet.Args()[1:])
	}
	slog.Debug("Flavor determined.", "flavor", flavor)

	config, err := app.NewConfig(app.Config{
		Flavor:    flavor,
		LogFormat: strings.ToLower(*logFormatFlag),
		LogLevel:  strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
