package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envLookup resolves a variable and reports which layer supplied it.
type envLookup func(key string) (value string, source ConfigSource, ok bool)

// newEnvLookup prefers the process environment and falls back to dotenv.
func newEnvLookup(dotenv map[string]string) envLookup {
	return func(key string) (string, ConfigSource, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, SourceEnv, true
		}
		if v, ok := dotenv[key]; ok && v != "" {
			return v, SourceDotEnv, true
		}
		return "", "", false
	}
}

// readDotEnv parses a .env file without touching the process environment.
// A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return godotenv.Read(path)
}

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, lookup envLookup, sources map[string]ConfigSource) {
	set := func(field string, source ConfigSource) {
		if sources != nil {
			sources[field] = source
		}
	}

	if v, src, ok := lookup("TASKPAD_DATA_DIR"); ok {
		cfg.DataDir = v
		set("data_dir", src)
	}
	if v, src, ok := lookup("TASKPAD_BACKEND"); ok {
		cfg.Backend = v
		set("backend", src)
	}
	if v, src, ok := lookup("TASKPAD_STORAGE_KEY"); ok {
		cfg.StorageKey = v
		set("storage_key", src)
	}
	if v, src, ok := lookup("TASKPAD_SCHEMA"); ok {
		cfg.SchemaFile = v
		set("schema_file", src)
	}
	if v, src, ok := lookup("TASKPAD_FILTER"); ok {
		cfg.DefaultFilter = v
		set("default_filter", src)
	}

	// Logging configuration
	if v, src, ok := lookup("TASKPAD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
		set("log_level", src)
	}
	if v, src, ok := lookup("TASKPAD_LOG_FORMAT"); ok {
		cfg.LogFormat = v
		set("log_format", src)
	}
	if v, src, ok := lookup("TASKPAD_LOG_TIMESTAMPS"); ok {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps", src)
	}
	if v, src, ok := lookup("TASKPAD_LOG_CALLER"); ok {
		cfg.LogCaller = boolFromString(v)
		set("log_caller", src)
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
