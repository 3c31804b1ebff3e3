package domain

import (
	"context"
	"time"
)

// DataSource reads and writes timeline records.
// Implementations speak to the REST API, a spreadsheet, or a local file.
type DataSource interface {
	// List returns the raw positional rows for the given mode.
	List(ctx context.Context, mode Mode) ([]RawRecord, error)

	// Update replaces the editable date pair of the record with the given ID.
	// Dates use the "YYYY-MM-DD 00:00:00" form.
	Update(ctx context.Context, id string, mode Mode, startDate, endDate string) error
}

// SnapshotStore persists raw rows for offline use.
type SnapshotStore interface {
	// Initialize creates the backing storage if it does not exist.
	Initialize() error

	// Replace overwrites every row of one collection.
	Replace(mode Mode, rows []RawRecord) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (global + local + environment).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetLocalConfigInfo returns information about the local (working directory) config file.
	GetLocalConfigInfo() ConfigInfo

	// InitGlobalConfig creates the global config file from the template.
	InitGlobalConfig(cfg *Config) error

	// InitLocalConfig creates the local config file from the template.
	InitLocalConfig(cfg *Config) error
}

// ConfigInfo contains information about a config file.
type ConfigInfo struct {
	Path    string // Path to the config file
	Content string // File content (empty if not exists)
	Exists  bool   // Whether the file exists
}

// Logger writes diagnostic messages.
// An empty mode logs only to the global log.
type Logger interface {
	Debug(mode Mode, category, msg string)
	Info(mode Mode, category, msg string)
	Warn(mode Mode, category, msg string)
	Error(mode Mode, category, msg string)
}

// Clock provides the current time (for testing).
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
