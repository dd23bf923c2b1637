package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nibzard/taskpad/internal/appdir"
)

// File is the append-only log file under the data directory.
type File struct {
	Path string
	file *os.File
}

// OpenFile opens <dataDir>/taskpad.log for appending, creating the
// directory if needed.
func OpenFile(dataDir string) (*File, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("log dir is empty")
	}
	path := appdir.LogPath(dataDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &File{Path: path, file: f}, nil
}

// Writer returns the underlying file.
func (f *File) Writer() io.Writer {
	return f.file
}

// Close closes the log file.
func (f *File) Close() error {
	if f == nil || f.file == nil {
		return nil
	}
	return f.file.Close()
}

// pollInterval is how often Tail checks for new data when following.
var pollInterval = 200 * time.Millisecond

// Tail writes the last n lines of the file at path to w. n <= 0 writes the
// whole file. With follow set it keeps copying new data until ctx is done.
func Tail(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := seekLastLines(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}
	if _, err := io.Copy(w, file); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return err
			}
		}
	}
}

// seekLastLines positions file at the start of its last n lines, reading
// backwards in fixed-size chunks.
func seekLastLines(file *os.File, n int) error {
	const chunkSize = 4096

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	end := stat.Size()
	if end == 0 {
		return nil
	}

	// A trailing newline terminates the last line rather than starting a new one.
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, end-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		end--
	}

	buf := make([]byte, chunkSize)
	offset := end
	seen := 0
	for offset > 0 {
		size := int64(chunkSize)
		if offset < size {
			size = offset
		}
		offset -= size
		chunk := buf[:size]
		if _, err := file.ReadAt(chunk, offset); err != nil && err != io.EOF {
			return err
		}
		for i := len(chunk) - 1; i >= 0; i-- {
			if chunk[i] != '\n' {
				continue
			}
			seen++
			if seen == n {
				_, err := file.Seek(offset+int64(i)+1, io.SeekStart)
				return err
			}
		}
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}
