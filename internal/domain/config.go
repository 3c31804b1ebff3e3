package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// SourceKind selects the DataSource adapter.
type SourceKind string

const (
	SourceHTTP   SourceKind = "http"   // REST API (GET /api/gantt, /api/projects; PUT /api/.../<id>)
	SourceSheets SourceKind = "sheets" // Google Sheets spreadsheet read directly
	SourceFile   SourceKind = "file"   // Local JSON file
)

// IsValid reports whether k names a known adapter.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceHTTP, SourceSheets, SourceFile:
		return true
	}
	return false
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Source   SourceConfig  `toml:"source"`
	Sheets   SheetsConfig  `toml:"sheets"`
	View     ViewConfig    `toml:"view"`
	Refresh  RefreshConfig `toml:"refresh"`
	Log      LogConfig     `toml:"log"`
}

// SourceConfig holds data source settings from the [source] section.
type SourceConfig struct {
	Kind            SourceKind    `toml:"kind"`             // http, sheets or file
	BaseURL         string        `toml:"base_url"`         // http: API root
	SpreadsheetID   string        `toml:"spreadsheet_id"`   // sheets: spreadsheet key
	CredentialsFile string        `toml:"credentials_file"` // sheets: service account JSON
	File            string        `toml:"file"`             // file: path to records JSON
	Timeout         time.Duration `toml:"-"`                // per-request timeout
}

// Missing returns the config keys the selected kind needs but lacks.
func (s SourceConfig) Missing() []string {
	var missing []string
	switch s.Kind {
	case SourceHTTP, "":
		if s.BaseURL == "" {
			missing = append(missing, "base_url")
		}
	case SourceSheets:
		if s.SpreadsheetID == "" {
			missing = append(missing, "spreadsheet_id")
		}
		if s.CredentialsFile == "" {
			missing = append(missing, "credentials_file")
		}
	}
	return missing
}

// SheetsConfig holds worksheet names from the [sheets] section.
type SheetsConfig struct {
	TasksSheet    string `toml:"tasks_sheet"`
	ProjectsSheet string `toml:"projects_sheet"`
}

// ViewConfig holds the initial view state from the [view] section.
type ViewConfig struct {
	Mode     Mode `toml:"mode"`
	Zoom     Zoom `toml:"zoom"`
	ReadOnly bool `toml:"read_only"`
}

// RefreshConfig holds polling settings from the [refresh] section.
type RefreshConfig struct {
	Interval  time.Duration `toml:"-"` // Periodic refetch (0 disables)
	AfterEdit time.Duration `toml:"-"` // Delay between a saved edit and the refetch
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Directory and file names.
const (
	AppDirName          = "gantt"       // Directory name under the user config home
	ConfigFileName      = "config.toml" // Global config file name
	LocalConfigFileName = ".gantt.toml" // Config file name in the working directory
	LogFileName         = "gantt.log"
)

// Default configuration values.
const (
	DefaultBaseURL         = "http://localhost:5000"
	DefaultRecordsFile     = "records.json"
	DefaultTasksSheet      = "SUBTAREFA"
	DefaultProjectsSheet   = "PRINCIPAL"
	DefaultLogLevel        = "info"
	DefaultTimeout         = 15 * time.Second
	DefaultRefreshInterval = 30 * time.Second
	DefaultAfterEditDelay  = 1500 * time.Millisecond
)

// GlobalDir returns the global application directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the config path inside dir.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFileName)
}

// LogPath returns the global log file path inside the application directory.
func LogPath(appDir string) string {
	return filepath.Join(appDir, "logs", LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:    SourceHTTP,
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Sheets: SheetsConfig{
			TasksSheet:    DefaultTasksSheet,
			ProjectsSheet: DefaultProjectsSheet,
		},
		View: ViewConfig{
			Mode: ModeTasks,
			Zoom: DefaultZoom,
		},
		Refresh: RefreshConfig{
			Interval:  DefaultRefreshInterval,
			AfterEdit: DefaultAfterEditDelay,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// InitialViewState returns the view state the configuration starts with.
func (c *Config) InitialViewState() ViewState {
	return ViewState{
		Filters:  AllFilters(),
		Mode:     ParseMode(string(c.View.Mode)),
		Zoom:     ParseZoom(string(c.View.Zoom)),
		ReadOnly: c.View.ReadOnly,
	}
}

// templateData holds all data for rendering the config template.
type templateData struct {
	Kind          string
	BaseURL       string
	TasksSheet    string
	ProjectsSheet string
	Mode          string
	Zoom          string
	LogLevel      string
	Timeout       string
	Interval      string
	AfterEdit     string
}

// RenderConfigTemplate renders a commented config file from cfg.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		Kind:          string(cfg.Source.Kind),
		BaseURL:       cfg.Source.BaseURL,
		TasksSheet:    cfg.Sheets.TasksSheet,
		ProjectsSheet: cfg.Sheets.ProjectsSheet,
		Mode:          string(cfg.View.Mode),
		Zoom:          string(cfg.View.Zoom),
		LogLevel:      cfg.Log.Level,
		Timeout:       cfg.Source.Timeout.String(),
		Interval:      cfg.Refresh.Interval.String(),
		AfterEdit:     cfg.Refresh.AfterEdit.String(),
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}

// ModeLogPath returns the per-mode log file path inside the application directory.
func ModeLogPath(appDir string, mode Mode) string {
	return filepath.Join(appDir, "logs", strings.ToLower(string(mode))+".log")
}
