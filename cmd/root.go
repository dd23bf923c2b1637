// Package cmd implements the CLI command structure for taskpad.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskpad/internal/config"
	"github.com/nibzard/taskpad/internal/logging"
	"github.com/nibzard/taskpad/internal/task"
	"github.com/nibzard/taskpad/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the taskpad CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskpad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// With no subcommand, open the TUI on a terminal and list otherwise
	subcommand := "ls"
	if ui.IsTTY(os.Stdout) && stdout == os.Stdout {
		subcommand = "tui"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(ctx, cfg, remainingArgs)
	case "toggle", "done":
		return toggleCommand(ctx, cfg, remainingArgs)
	case "rm", "delete":
		return rmCommand(ctx, cfg, remainingArgs)
	case "edit":
		return editCommand(ctx, cfg, remainingArgs)
	case "clear":
		return clearCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(ctx, cws, remainingArgs)
	case "logs":
		return logsCommand(ctx, cfg, remainingArgs)
	case "config":
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// cliLogger logs to stderr so that stdout stays parseable.
func cliLogger(cfg *config.Config) *log.Logger {
	return logging.New(stderr, logging.OptionsFromConfig(cfg))
}

// tuiCommand launches the TUI. Logs go to the data directory because the
// TUI owns the terminal.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskpad tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filter := fs.String("filter", cfg.DefaultFilter, "Initial filter (all, active, completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logFile, err := logging.OpenFile(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.New(logFile.Writer(), logging.OptionsFromConfig(cfg))

	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info("tui started", "backend", cfg.Backend, "key", a.persister.Key(), "tasks", a.store.Snapshot().Len())
	return ui.RunTUI(ctx, a.store,
		ui.WithFilter(task.ParseFilter(*filter)),
		ui.WithLogger(logger),
	)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "taskpad version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskpad - a local task list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskpad [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Interactive list (default on a terminal)")
	fmt.Fprintln(w, "  ls [filter]         List tasks (default when piped)")
	fmt.Fprintln(w, "  add <title...>      Add a task")
	fmt.Fprintln(w, "  toggle <id>         Flip a task between active and completed")
	fmt.Fprintln(w, "  rm <id>             Delete a task")
	fmt.Fprintln(w, "  edit <id> <title>   Change a task title")
	fmt.Fprintln(w, "  clear               Delete all completed tasks")
	fmt.Fprintln(w, "  doctor              Show config sources and check stored data")
	fmt.Fprintln(w, "  logs                Print the TUI log file")
	fmt.Fprintln(w, "  config              Print an example config file")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "An <id> may be any unique prefix of a task id. Unknown or ambiguous ids")
	fmt.Fprintln(w, "are errors; an empty title is ignored.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -filter string")
	fmt.Fprintln(w, "        Filter tasks (all|active|completed)")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the filtered tasks as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options (use with 'logs' command):")
	fmt.Fprintln(w, "  -f, -follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all) (default 50)")
}
