// Package appdir provides constants and utilities for the .taskpad directory structure.
package appdir

import "path/filepath"

const (
	// Dir is the name of the taskpad state directory.
	Dir = ".taskpad"

	// DefaultConfigFile is the config file name (inside .taskpad or a project root).
	DefaultConfigFile = "taskpad.toml"

	// DefaultDatabaseFile is the sqlite database file name (inside the data dir).
	DefaultDatabaseFile = "taskpad.db"

	// DefaultLogFile is the log file the TUI writes to (inside the data dir).
	DefaultLogFile = "taskpad.log"

	// DefaultStorageKey is the slot holding the serialized task list.
	DefaultStorageKey = "tasks"
)

// DirPath returns the full path to the .taskpad directory within a base directory.
func DirPath(baseDir string) string {
	if baseDir == "." || baseDir == "" {
		return Dir
	}
	return filepath.Join(baseDir, Dir)
}

// ConfigPath returns the config file path within a base directory's .taskpad dir.
func ConfigPath(baseDir string) string {
	return filepath.Join(DirPath(baseDir), DefaultConfigFile)
}

// DatabasePath returns the sqlite database path within a data directory.
func DatabasePath(dataDir string) string {
	return joinPath(dataDir, DefaultDatabaseFile)
}

// LogPath returns the TUI log file path within a data directory.
func LogPath(dataDir string) string {
	return joinPath(dataDir, DefaultLogFile)
}

// SlotPath returns the file backing a storage key within a data directory.
func SlotPath(dataDir, key string) string {
	return joinPath(dataDir, SanitizeKey(key)+".json")
}

// SanitizeKey maps a storage key to a safe file name component.
func SanitizeKey(key string) string {
	var b []byte
	for i := 0; i < len(key); i++ {
		c := key[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '_' || c == '-' || c == '.'
		if !valid {
			c = '_'
		}
		b = append(b, c)
	}
	for len(b) > 0 && (b[0] == '.' || b[0] == '_') {
		b = b[1:]
	}
	if len(b) == 0 {
		return DefaultStorageKey
	}
	return string(b)
}

func joinPath(dataDir, file string) string {
	if dataDir == "" {
		return file
	}
	return filepath.Join(dataDir, file)
}
