package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/taskpad/internal/config"
	"github.com/nibzard/taskpad/internal/task"
)

// doctorCommand reports where each setting came from and whether the stored
// slot would load.
func doctorCommand(ctx context.Context, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskpad doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	cfg := cws.Config

	fmt.Fprintln(stdout, "taskpad doctor")
	fmt.Fprintln(stdout, "==============")
	fmt.Fprintln(stdout)

	allOK := true

	// Config values and their sources
	fmt.Fprintln(stdout, "Config:")
	for _, field := range cws.SortedFields() {
		fmt.Fprintf(stdout, "  %-15s %-30s (%s)\n", field, cfg.Value(field), cws.Sources[field])
	}
	if len(cws.Files) == 0 {
		fmt.Fprintln(stdout, "  No config files found (run 'taskpad config' for an example)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(stdout, "  File: %s\n", f)
	}
	fmt.Fprintln(stdout)

	// Data directory
	fmt.Fprintf(stdout, "Data directory: %s\n", cfg.DataDir)
	if info, err := os.Stat(cfg.DataDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first save)")
		} else {
			fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(stdout, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	fmt.Fprintln(stdout)

	// Storage slot
	fmt.Fprintf(stdout, "Storage: %s\n", cfg.Backend)
	kv, p, err := openStorage(ctx, cfg, cliLogger(cfg))
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		defer kv.Close()
		fmt.Fprintf(stdout, "  Location: %s\n", storageLocation(kv, p.Key()))
		result := p.Inspect(ctx)
		fmt.Fprintf(stdout, "  Slot: %s\n", p.Key())
		fmt.Fprintf(stdout, "  Schema: %s\n", result.Schema)
		for _, w := range result.Warnings {
			fmt.Fprintf(stdout, "  ⚠️  %s\n", w)
		}
		switch {
		case !result.Present:
			fmt.Fprintln(stdout, "  ⚠️  Empty (nothing saved yet)")
		case result.Valid:
			counts := task.CountTasks(result.Tasks)
			fmt.Fprintf(stdout, "  ✅ Valid: %d tasks (%d active, %d completed)\n",
				counts.Total, counts.Active, counts.Completed)
		default:
			fmt.Fprintln(stdout, "  ❌ Validation failed (the list will load as empty):")
			for _, e := range result.Errors {
				fmt.Fprintf(stdout, "     - %v\n", e)
			}
			allOK = false
		}
		if *verbose && result.Valid {
			for _, t := range result.Tasks {
				fmt.Fprintf(stdout, "    - %s\n", formatVerbose(t))
			}
		}
	}
	fmt.Fprintln(stdout)

	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed. Stored tasks will not load.")
	return fmt.Errorf("doctor checks failed")
}

func formatVerbose(t task.Task) string {
	state := "active"
	if t.Completed {
		state = "completed"
	}
	return fmt.Sprintf("[%s] %s: %s", state, t.ID, t.Title)
}
