package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskpad configuration file
# Values can be overridden by a .env file, TASKPAD_* environment variables or CLI flags

# Directory holding task data (supports ~ expansion and %VAR% on Windows)
data_dir = "~/.taskpad"

# Storage backend: file (one JSON file per slot), sqlite, or memory
backend = "file"

# Storage slot holding the task list
storage_key = "tasks"

# JSON Schema used to validate stored tasks (default: built in)
# schema_file = "tasks.schema.json"

# Initial filter for ls and the TUI: all, active, or completed
default_filter = "all"

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
