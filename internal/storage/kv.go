// Package storage persists task snapshots in a local key-value slot.
package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nibzard/taskpad/internal/appdir"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the supported backend names.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// KV is a local key-value store holding one serialized value per key.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases any resources held by the store.
	Close() error
}

// NormalizeBackend lowercases and trims a backend name. An empty name maps
// to BackendFile.
func NormalizeBackend(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return BackendFile
	case "sqlite3", "db":
		return BackendSQLite
	case "mem":
		return BackendMemory
	default:
		return name
	}
}

// Open creates the KV backend with the given name rooted at dataDir.
func Open(ctx context.Context, backend, dataDir string) (KV, error) {
	switch NormalizeBackend(backend) {
	case BackendFile:
		return NewFileKV(dataDir), nil
	case BackendSQLite:
		return OpenSQLite(ctx, appdir.DatabasePath(dataDir))
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected %s)", backend, strings.Join(Backends, "|"))
	}
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error {
	return nil
}
