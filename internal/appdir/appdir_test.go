package appdir

import (
	"path/filepath"
	"testing"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tasks", "tasks"},
		{"my-list_2", "my-list_2"},
		{"../etc/passwd", "etc_passwd"},
		{"a/b", "a_b"},
		{"", DefaultStorageKey},
		{"...", DefaultStorageKey},
		{".hidden", "hidden"},
	}

	for _, tt := range tests {
		if got := SanitizeKey(tt.in); got != tt.want {
			t.Errorf("SanitizeKey(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPaths(t *testing.T) {
	if got := DirPath(""); got != Dir {
		t.Errorf("DirPath(\"\"): got %q, want %q", got, Dir)
	}
	if got, want := DirPath("/home/u"), filepath.Join("/home/u", Dir); got != want {
		t.Errorf("DirPath: got %q, want %q", got, want)
	}
	if got, want := ConfigPath("/home/u"), filepath.Join("/home/u", Dir, DefaultConfigFile); got != want {
		t.Errorf("ConfigPath: got %q, want %q", got, want)
	}
	if got, want := SlotPath("/data", "tasks"), filepath.Join("/data", "tasks.json"); got != want {
		t.Errorf("SlotPath: got %q, want %q", got, want)
	}
	if got, want := DatabasePath("/data"), filepath.Join("/data", DefaultDatabaseFile); got != want {
		t.Errorf("DatabasePath: got %q, want %q", got, want)
	}
	if got := LogPath(""); got != DefaultLogFile {
		t.Errorf("LogPath(\"\"): got %q, want %q", got, DefaultLogFile)
	}
}
