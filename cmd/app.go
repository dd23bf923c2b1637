package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskpad/internal/config"
	"github.com/nibzard/taskpad/internal/storage"
	"github.com/nibzard/taskpad/internal/task"
)

// app wires one task list: the storage backend, the persister subscribed to
// the store, and the store itself.
type app struct {
	logger    *log.Logger
	kv        storage.KV
	persister *storage.Persister
	store     *task.Store
	detach    func()
}

// openStorage opens the configured backend and a persister over its slot.
func openStorage(ctx context.Context, cfg *config.Config, logger *log.Logger) (storage.KV, *storage.Persister, error) {
	kv, err := storage.Open(ctx, cfg.Backend, cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s storage: %w", cfg.Backend, err)
	}
	p := storage.NewPersister(kv,
		storage.WithKey(cfg.StorageKey),
		storage.WithSchemaFile(cfg.SchemaFile),
		storage.WithLogger(logger),
	)
	return kv, p, nil
}

// openApp loads the stored list into a new store and attaches persistence.
func openApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app, error) {
	kv, p, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	store := task.NewStore(p.Load(ctx))
	a := &app{
		logger:    logger,
		kv:        kv,
		persister: p,
		store:     store,
		detach:    p.Attach(ctx, store),
	}
	logger.Debug("opened task list", "backend", cfg.Backend, "key", p.Key(), "tasks", store.Snapshot().Len())
	return a, nil
}

// Close detaches persistence and releases the backend.
func (a *app) Close() error {
	if a.detach != nil {
		a.detach()
	}
	return a.kv.Close()
}

// storageLocation describes where an opened backend keeps the slot for key.
func storageLocation(kv storage.KV, key string) string {
	switch kv := kv.(type) {
	case *storage.FileKV:
		return kv.Path(key)
	case *storage.SQLiteKV:
		return kv.Path()
	default:
		return "(process memory)"
	}
}
