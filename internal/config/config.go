// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Logging LoggingConfig
	Archive ArchiveConfig
	Import  ImportConfig
	IDs     IDConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ArchiveConfig holds roster archive settings.
type ArchiveConfig struct {
	// Path is the SQLite file the roster is archived in (default: registrar.db)
	// Supports both ARCHIVE_PATH and DATABASE_PATH env vars for compatibility
	Path string `env:"ARCHIVE_PATH" envAlt:"DATABASE_PATH" default:"registrar.db"`

	// HistoryLimit caps the operations journal; 0 keeps everything (default: 100)
	HistoryLimit int `env:"ARCHIVE_HISTORY_LIMIT" default:"100"`

	// BusyTimeout is how long SQLite waits on a locked database file (default: 5s)
	BusyTimeout time.Duration `env:"ARCHIVE_BUSY_TIMEOUT" default:"5s"`

	// SaveOnExit controls whether quitting archives the roster (default: true)
	SaveOnExit bool `env:"ARCHIVE_SAVE_ON_EXIT" default:"true"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum allowed import file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`
}

// IDConfig holds identifier generation settings.
type IDConfig struct {
	// Prefix is prepended to generated identifiers (default: S)
	Prefix string `env:"ID_PREFIX" default:"S"`
}
