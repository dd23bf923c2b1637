package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/taskpad/internal/config"
	"github.com/nibzard/taskpad/internal/storage"
	"github.com/nibzard/taskpad/internal/task"
)

// shortIDLen is how many id characters ls prints.
const shortIDLen = 8

// lsCommand prints the tasks selected by a filter in insertion order.
func lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskpad ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filterArg := fs.String("filter", cfg.DefaultFilter, "Filter tasks (all|active|completed)")
	asJSON := fs.Bool("json", false, "Print the filtered tasks as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		*filterArg = remaining[0]
	}
	filter := task.ParseFilter(*filterArg)

	a, err := openApp(ctx, cfg, cliLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	snap := a.store.Snapshot()
	visible := snap.Select(filter)

	if *asJSON {
		data, err := storage.Encode(visible)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	fmt.Fprintf(stdout, "%s (%d)\n", filter.Label(), len(visible))
	if len(visible) == 0 {
		fmt.Fprintf(stdout, "  %s\n", filter.EmptyMessage())
	}
	for _, t := range visible {
		printTask(t)
	}
	if counts := snap.Counts(); counts.Total > 0 {
		fmt.Fprintf(stdout, "\n%d tasks left, %d completed\n", counts.Active, counts.Completed)
	}
	return nil
}

// addCommand appends a task. A blank title is ignored.
func addCommand(ctx context.Context, cfg *config.Config, args []string) error {
	title := strings.Join(args, " ")

	a, err := openApp(ctx, cfg, cliLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	before := a.store.Snapshot()
	after := a.store.Add(title)
	if after == before {
		a.logger.Debug("ignoring blank title")
		return nil
	}
	tasks := after.Tasks()
	added := tasks[len(tasks)-1]
	fmt.Fprintf(stdout, "Added %s  %s\n", shortID(added.ID), added.Title)
	return nil
}

// toggleCommand flips a task between active and completed.
func toggleCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskpad toggle <id>")
	}

	a, err := openApp(ctx, cfg, cliLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := resolveID(a.store.Snapshot(), args[0])
	if err != nil {
		return err
	}
	toggled, _ := a.store.Toggle(t.ID).Find(t.ID)
	verb := "Reopened"
	if toggled.Completed {
		verb = "Completed"
	}
	fmt.Fprintf(stdout, "%s %s  %s\n", verb, shortID(t.ID), t.Title)
	return nil
}

// rmCommand deletes a task.
func rmCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskpad rm <id>")
	}

	a, err := openApp(ctx, cfg, cliLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := resolveID(a.store.Snapshot(), args[0])
	if err != nil {
		return err
	}
	a.store.Delete(t.ID)
	fmt.Fprintf(stdout, "Deleted %s  %s\n", shortID(t.ID), t.Title)
	return nil
}

// editCommand replaces a task title. A blank title leaves the task as is.
func editCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: taskpad edit <id> <title...>")
	}

	a, err := openApp(ctx, cfg, cliLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := resolveID(a.store.Snapshot(), args[0])
	if err != nil {
		return err
	}
	before := a.store.Snapshot()
	after := a.store.Update(t.ID, strings.Join(args[1:], " "))
	if after == before {
		a.logger.Debug("title unchanged", "id", t.ID)
		return nil
	}
	updated, _ := after.Find(t.ID)
	fmt.Fprintf(stdout, "Updated %s  %s\n", shortID(t.ID), updated.Title)
	return nil
}

// clearCommand deletes every completed task.
func clearCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	a, err := openApp(ctx, cfg, cliLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	removed := a.store.Snapshot().Counts().Completed
	a.store.ClearCompleted()
	fmt.Fprintf(stdout, "Cleared %d completed tasks\n", removed)
	return nil
}

// resolveID finds the task whose id equals ref or, failing that, the single
// task whose id starts with ref.
func resolveID(snap *task.Snapshot, ref string) (task.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, fmt.Errorf("missing task id")
	}
	if t, ok := snap.Find(ref); ok {
		return t, nil
	}

	var matches []task.Task
	for _, t := range snap.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("no task with id %q", ref)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("id prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// printTask prints one ls line.
func printTask(t task.Task) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	fmt.Fprintf(stdout, "  %s %-*s  %s  (%s)\n",
		box, shortIDLen, shortID(t.ID), t.Title, t.CreatedAt.Local().Format("Jan 2, 2006"))
}
