package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/vk/classcanvas/internal/app"
)

// DefaultConfigPath is the project file used when -config is not given.
const DefaultConfigPath = "classcanvas.hcl"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flags may come before or after the command.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("classcanvas", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
classcanvas - Keep a JSON Canvas class diagram in step with C++ headers.

Usage:
  classcanvas [options] COMMAND

Commands:
  init       Scan the source tree and write a starter project file.
  generate   Write a fresh diagram of every configured class.
  sync       Add nodes for classes missing from the existing canvas.
  refresh    Rewrite class nodes from their headers.
  add        Add the members of a group (-group) below its anchor.
  inspect    Print a YAML report of what the headers contain.
  watch      Refresh whenever a header changes.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", DefaultConfigPath, "Path to the HCL project file.")
	cFlag := flagSet.String("c", "", "Path to the HCL project file (shorthand).")
	canvasFlag := flagSet.String("canvas", "", "Canvas file to read and write, overriding the project.")
	srcFlag := flagSet.String("src", "", "C++ source root, overriding the project.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the canvas to stdout instead of writing it.")
	groupFlag := flagSet.String("group", "", "Group to add (add command).")
	notifyFlag := flagSet.String("notify-url", "", "socket.io server to notify after writing, overriding the project.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	debounceFlag := flagSet.Duration("debounce", app.DefaultDebounce, "How long watch waits for changes to settle.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the watch health check server. 0 is disabled.")

	var positional []string
	rest := args
	for {
		if err := flagSet.Parse(rest); err != nil {
			if err == flag.ErrHelp {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		if flagSet.NArg() == 0 {
			break
		}
		positional = append(positional, flagSet.Arg(0))
		rest = flagSet.Args()[1:]
	}
	slog.Debug("Arguments parsed successfully.", "positional", positional)

	if len(positional) == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if len(positional) > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments after command: %s", strings.Join(positional[1:], " "))}
	}

	configPath := *configFlag
	if *cFlag != "" {
		configPath = *cFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *debounceFlag < 0 || *debounceFlag > time.Minute {
		return nil, false, &ExitError{Code: 2, Message: "invalid debounce: must be between 0 and 1m"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Command:         strings.ToLower(positional[0]),
		ConfigPath:      configPath,
		CanvasPath:      *canvasFlag,
		SourceRoot:      *srcFlag,
		NotifyURL:       *notifyFlag,
		Group:           *groupFlag,
		DryRun:          *dryRunFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Debounce:        *debounceFlag,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
