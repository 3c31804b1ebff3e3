// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/gantt/internal/domain"
)

// Environment variables that override file settings.
const (
	EnvSource          = "GANTT_SOURCE"
	EnvAPIURL          = "GANTT_API_URL"
	EnvSpreadsheetID   = "SPREADSHEET_ID"
	EnvCredentialsFile = "GOOGLE_CREDS_FILE"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	getenv        func(string) string
	workDir       string // Directory holding the local .gantt.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/gantt)
}

// NewLoader creates a new Loader.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: DefaultGlobalConfigDir(),
		getenv:        os.Getenv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory
// and environment lookup. This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
		getenv:        getenv,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalDir(configHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- local <- environment.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if l.globalConfDir != "" {
		if err := l.applyFile(cfg, filepath.Join(l.globalConfDir, domain.ConfigFileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if l.workDir != "" {
		if err := l.applyFile(cfg, domain.LocalConfigPath(l.workDir)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	l.applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGlobal returns the defaults overlaid with the global file only.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	cfg := domain.NewDefaultConfig()
	if err := l.applyFile(cfg, filepath.Join(l.globalConfDir, domain.ConfigFileName)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays the settings found in path onto cfg.
func (l *Loader) applyFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	warnings := applyRaw(cfg, raw)
	for _, w := range warnings {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: %s", filepath.Base(path), w))
	}
	return nil
}

func (l *Loader) applyEnv(cfg *domain.Config) {
	if v := l.getenv(EnvSource); v != "" {
		cfg.Source.Kind = domain.SourceKind(strings.ToLower(v))
	}
	if v := l.getenv(EnvAPIURL); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := l.getenv(EnvSpreadsheetID); v != "" {
		cfg.Source.SpreadsheetID = v
	}
	if v := l.getenv(EnvCredentialsFile); v != "" {
		cfg.Source.CredentialsFile = v
	}
}

func validate(cfg *domain.Config) error {
	if !cfg.Source.Kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownSourceKind, cfg.Source.Kind)
	}
	return nil
}

// applyRaw overlays a decoded TOML document onto cfg and returns warnings
// for unknown or mistyped keys. Keys present in raw always win, including
// zero values such as read_only = false or interval = "0s".
func applyRaw(cfg *domain.Config, raw map[string]any) []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warn("unknown key: %s", section)
			continue
		}
		switch section {
		case "source":
			for k, v := range m {
				switch k {
				case "kind":
					setString(v, func(s string) { cfg.Source.Kind = domain.SourceKind(strings.ToLower(s)) }, section, k, warn)
				case "base_url":
					setString(v, func(s string) { cfg.Source.BaseURL = s }, section, k, warn)
				case "spreadsheet_id":
					setString(v, func(s string) { cfg.Source.SpreadsheetID = s }, section, k, warn)
				case "credentials_file":
					setString(v, func(s string) { cfg.Source.CredentialsFile = s }, section, k, warn)
				case "file":
					setString(v, func(s string) { cfg.Source.File = s }, section, k, warn)
				case "timeout":
					setDuration(v, func(d time.Duration) { cfg.Source.Timeout = d }, section, k, warn)
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		case "sheets":
			for k, v := range m {
				switch k {
				case "tasks_sheet":
					setString(v, func(s string) { cfg.Sheets.TasksSheet = s }, section, k, warn)
				case "projects_sheet":
					setString(v, func(s string) { cfg.Sheets.ProjectsSheet = s }, section, k, warn)
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		case "view":
			for k, v := range m {
				switch k {
				case "mode":
					setString(v, func(s string) { cfg.View.Mode = domain.ParseMode(s) }, section, k, warn)
				case "zoom":
					setString(v, func(s string) {
						z := domain.ParseZoom(s)
						if string(z) != strings.ToLower(strings.TrimSpace(s)) {
							warn("unknown zoom in [%s]: %s (using %s)", section, s, z)
						}
						cfg.View.Zoom = z
					}, section, k, warn)
				case "read_only":
					if b, ok := v.(bool); ok {
						cfg.View.ReadOnly = b
					} else {
						warn("invalid value in [%s]: %s", section, k)
					}
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		case "refresh":
			for k, v := range m {
				switch k {
				case "interval":
					setDuration(v, func(d time.Duration) { cfg.Refresh.Interval = d }, section, k, warn)
				case "after_edit":
					setDuration(v, func(d time.Duration) { cfg.Refresh.AfterEdit = d }, section, k, warn)
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					setString(v, func(s string) { cfg.Log.Level = s }, section, k, warn)
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		default:
			warn("unknown section: %s", section)
		}
	}

	sort.Strings(warnings)
	return warnings
}

func setString(v any, set func(string), section, key string, warn func(string, ...any)) {
	s, ok := v.(string)
	if !ok {
		warn("invalid value in [%s]: %s", section, key)
		return
	}
	set(s)
}

// setDuration accepts a Go duration string ("1.5s") or a number of seconds.
func setDuration(v any, set func(time.Duration), section, key string, warn func(string, ...any)) {
	switch x := v.(type) {
	case string:
		d, err := time.ParseDuration(x)
		if err != nil || d < 0 {
			warn("invalid duration in [%s]: %s", section, key)
			return
		}
		set(d)
	case int64:
		if x < 0 {
			warn("invalid duration in [%s]: %s", section, key)
			return
		}
		set(time.Duration(x) * time.Second)
	case float64:
		if x < 0 {
			warn("invalid duration in [%s]: %s", section, key)
			return
		}
		set(time.Duration(x * float64(time.Second)))
	default:
		warn("invalid duration in [%s]: %s", section, key)
	}
}
