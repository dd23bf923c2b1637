package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/taskpad/internal/appdir"
)

// FileKV stores each key in its own JSON file under Dir.
type FileKV struct {
	Dir string
}

// NewFileKV returns a file-backed store rooted at dir.
func NewFileKV(dir string) *FileKV {
	return &FileKV{Dir: dir}
}

// Path returns the file backing key.
func (f *FileKV) Path(key string) string {
	return appdir.SlotPath(f.Dir, key)
}

// Get reads the file for key. A missing file is reported as absent.
func (f *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot file: %w", err)
	}
	return data, true, nil
}

// Set writes value to a temporary file and renames it over the slot file.
func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := f.Path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod slot file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace slot file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (f *FileKV) Close() error {
	return nil
}
