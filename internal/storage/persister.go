package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskpad/internal/appdir"
	"github.com/nibzard/taskpad/internal/task"
)

// Persister loads and saves the task list in one KV slot. Load never fails
// and Save is best effort; problems are logged, not returned.
type Persister struct {
	kv     KV
	key    string
	opts   ValidationOptions
	logger *log.Logger
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithKey sets the slot name. The default is "tasks".
func WithKey(key string) PersisterOption {
	return func(p *Persister) {
		if key != "" {
			p.key = key
		}
	}
}

// WithSchemaFile validates loaded data against a schema file instead of the
// embedded schema.
func WithSchemaFile(path string) PersisterOption {
	return func(p *Persister) {
		p.opts.SchemaPath = path
	}
}

// WithLogger sets the logger for load and save problems.
func WithLogger(logger *log.Logger) PersisterOption {
	return func(p *Persister) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPersister creates a Persister over kv.
func NewPersister(kv KV, opts ...PersisterOption) *Persister {
	p := &Persister{
		kv:     kv,
		key:    appdir.DefaultStorageKey,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the slot name.
func (p *Persister) Key() string {
	return p.key
}

// Load returns the persisted tasks. Absent, unreadable or malformed data
// yields an empty list.
func (p *Persister) Load(ctx context.Context) []task.Task {
	result := p.Inspect(ctx)
	if !result.Valid {
		fields := []interface{}{"key", p.key, "errors", len(result.Errors)}
		if len(result.Errors) > 0 {
			fields = append(fields, "first", result.Errors[0])
		}
		p.logger.Warn("ignoring stored task list", fields...)
		return []task.Task{}
	}
	for _, w := range result.Warnings {
		p.logger.Warn(w, "key", p.key)
	}
	p.logger.Debug("loaded task list", "key", p.key, "tasks", len(result.Tasks))
	return result.Tasks
}

// Inspect reads and validates the slot, reporting every problem found.
func (p *Persister) Inspect(ctx context.Context) *ValidationResult {
	data, ok, err := p.kv.Get(ctx, p.key)
	if err != nil {
		result := Validate(nil, p.opts)
		result.Present = true
		result.fail(fmt.Errorf("read slot %q: %w", p.key, err))
		return result
	}
	if !ok {
		return Validate(nil, p.opts)
	}
	return Validate(data, p.opts)
}

// Save replaces the slot with tasks. Errors are logged and dropped.
func (p *Persister) Save(ctx context.Context, tasks []task.Task) {
	data, err := Encode(tasks)
	if err != nil {
		p.logger.Error("encode task list", "key", p.key, "err", err)
		return
	}
	if err := p.kv.Set(ctx, p.key, data); err != nil {
		p.logger.Error("save task list", "key", p.key, "err", err)
		return
	}
	p.logger.Debug("saved task list", "key", p.key, "tasks", len(tasks))
}

// Attach saves every snapshot the store publishes. The returned function
// detaches the persister.
func (p *Persister) Attach(ctx context.Context, store *task.Store) (detach func()) {
	return store.Subscribe(func(snap *task.Snapshot) {
		p.Save(ctx, snap.Tasks())
	})
}

// Encode serializes tasks with 2-space indentation and a trailing newline.
// A nil slice is written as an empty array.
func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task list: %w", err)
	}
	return append(data, '\n'), nil
}
