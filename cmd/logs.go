package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/taskpad/internal/appdir"
	"github.com/nibzard/taskpad/internal/config"
	"github.com/nibzard/taskpad/internal/logging"
)

// logsCommand prints the TUI log file.
func logsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskpad logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 50, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logPath := appdir.LogPath(cfg.DataDir)
	if _, err := os.Stat(logPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(stdout, "No log file found.")
			return nil
		}
		return fmt.Errorf("checking log file: %w", err)
	}

	if *follow {
		fmt.Fprintf(stderr, "Following %s (Ctrl+C to stop)\n", logPath)
	}
	return logging.Tail(ctx, stdout, logPath, *n, *follow)
}
