package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func backendsUnderTest(t *testing.T) map[string]KV {
	t.Helper()
	ctx := context.Background()

	sqliteKV, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{
		BackendMemory: NewMemoryKV(),
		BackendFile:   NewFileKV(t.TempDir()),
		BackendSQLite: sqliteKV,
	}
}

func TestKVBackends(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get(ctx, "tasks"); err != nil || ok {
				t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
			}

			if err := kv.Set(ctx, "tasks", []byte(`[1]`)); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := kv.Set(ctx, "tasks", []byte(`[2]`)); err != nil {
				t.Fatalf("Set() replace error = %v", err)
			}

			got, ok, err := kv.Get(ctx, "tasks")
			if err != nil || !ok {
				t.Fatalf("Get() ok=%v err=%v", ok, err)
			}
			if string(got) != `[2]` {
				t.Errorf("Get(): got %q, want %q", got, `[2]`)
			}

			if _, ok, _ := kv.Get(ctx, "other"); ok {
				t.Error("expected other key to be absent")
			}
		})
	}
}

func TestFileKVWritesSlotFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	kv := NewFileKV(dir)

	if err := kv.Set(context.Background(), "tasks", []byte("[]\n")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("slot file not written: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("slot file: got %q", data)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestFileKVCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	kv := NewFileKV(t.TempDir())
	if err := kv.Set(ctx, "tasks", []byte("[]")); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestSQLiteKVPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "taskpad.db")

	first, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if first.Path() != path {
		t.Errorf("Path(): got %q, want %q", first.Path(), path)
	}
	if err := first.Set(ctx, "tasks", []byte(`["kept"]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	first.Close()

	second, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()

	got, ok, err := second.Get(ctx, "tasks")
	if err != nil || !ok {
		t.Fatalf("Get() ok=%v err=%v", ok, err)
	}
	if string(got) != `["kept"]` {
		t.Errorf("Get(): got %q", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		backend string
		wantErr bool
	}{
		{"", false},
		{"file", false},
		{"FILE", false},
		{"sqlite", false},
		{"memory", false},
		{"redis", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			kv, err := Open(ctx, tt.backend, dir)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "unknown storage backend") {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open(%q) error = %v", tt.backend, err)
			}
			kv.Close()
		})
	}
}
