// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/infra/config"
	"github.com/runoshun/gantt/internal/infra/export"
	"github.com/runoshun/gantt/internal/infra/httpapi"
	"github.com/runoshun/gantt/internal/infra/jsonstore"
	"github.com/runoshun/gantt/internal/infra/logging"
	"github.com/runoshun/gantt/internal/infra/sheets"
	"github.com/runoshun/gantt/internal/usecase"
)

// Paths holds the directories the application works with.
type Paths struct {
	WorkDir string // Directory holding the local .gantt.toml
	AppDir  string // Global application directory (config and logs)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Source        domain.DataSource
	Clock         domain.Clock
	Logger        domain.Logger
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	Exporters map[domain.ExportFormat]domain.Exporter

	// Pointer fields
	Config *domain.Config
	closer func() error

	Paths Paths
}

// New creates a new Container for the given working directory.
// The data source is connected lazily, so commands that never touch records
// work without credentials or network access.
func New(dir string) (*Container, error) {
	loader := config.NewLoader(dir)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	paths := Paths{WorkDir: dir, AppDir: config.DefaultGlobalConfigDir()}
	logger := logging.New(paths.AppDir, logging.ParseLevel(cfg.Log.Level))

	return &Container{
		Source:        newLazySource(func() (domain.DataSource, error) { return NewDataSource(cfg, dir) }),
		Clock:         domain.RealClock{},
		Logger:        logger,
		ConfigLoader:  loader,
		ConfigManager: config.NewManager(dir),
		Exporters:     export.Exporters(),
		Config:        cfg,
		closer:        logger.Close,
		Paths:         paths,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, source domain.DataSource, clock domain.Clock, logger domain.Logger) *Container {
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	return &Container{
		Source:    source,
		Clock:     clock,
		Logger:    logger,
		Exporters: export.Exporters(),
		Config:    cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// NewDataSource builds the data source selected by cfg.Source.Kind.
// Relative file paths are resolved against dir.
func NewDataSource(cfg *domain.Config, dir string) (domain.DataSource, error) {
	src := cfg.Source
	switch src.Kind {
	case domain.SourceHTTP, "":
		return httpapi.NewClient(src.BaseURL, src.Timeout), nil
	case domain.SourceSheets:
		if missing := src.Missing(); len(missing) > 0 {
			return nil, fmt.Errorf("%w: sheets source needs %s", domain.ErrSourceNotReady, strings.Join(missing, " and "))
		}
		values, err := sheets.NewAPIValuesFromCredentials(context.Background(), resolve(dir, src.CredentialsFile))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrSourceNotReady, err)
		}
		return sheets.New(values, src.SpreadsheetID, cfg.Sheets.TasksSheet, cfg.Sheets.ProjectsSheet), nil
	case domain.SourceFile:
		return jsonstore.New(resolve(dir, recordsFile(src.File))), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSourceKind, src.Kind)
	}
}

func recordsFile(path string) string {
	if path == "" {
		return domain.DefaultRecordsFile
	}
	return path
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// lazySource defers data source construction until the first call.
type lazySource struct {
	build  func() (domain.DataSource, error)
	source domain.DataSource
	err    error
	once   sync.Once
}

func newLazySource(build func() (domain.DataSource, error)) *lazySource {
	return &lazySource{build: build}
}

func (l *lazySource) get() (domain.DataSource, error) {
	l.once.Do(func() {
		l.source, l.err = l.build()
	})
	return l.source, l.err
}

func (l *lazySource) List(ctx context.Context, mode domain.Mode) ([]domain.RawRecord, error) {
	src, err := l.get()
	if err != nil {
		return nil, err
	}
	return src.List(ctx, mode)
}

func (l *lazySource) Update(ctx context.Context, id string, mode domain.Mode, startDate, endDate string) error {
	src, err := l.get()
	if err != nil {
		return err
	}
	return src.Update(ctx, id, mode, startDate, endDate)
}

// UseCase factory methods

// FetchRecordsUseCase returns a new FetchRecords use case.
func (c *Container) FetchRecordsUseCase() *usecase.FetchRecords {
	return usecase.NewFetchRecords(c.Source, c.Logger)
}

// BuildViewUseCase returns a new BuildView use case.
func (c *Container) BuildViewUseCase() *usecase.BuildView {
	return usecase.NewBuildView(c.Clock)
}

// UpdateDatesUseCase returns a new UpdateDates use case.
func (c *Container) UpdateDatesUseCase() *usecase.UpdateDates {
	return usecase.NewUpdateDates(c.Source, c.Logger)
}

// ExportViewUseCase returns a new ExportView use case.
func (c *Container) ExportViewUseCase() *usecase.ExportView {
	return usecase.NewExportView(c.Source, c.Exporters, c.Clock, c.Logger)
}

// SnapshotRecordsUseCase returns a new SnapshotRecords use case writing to path.
func (c *Container) SnapshotRecordsUseCase(path string) *usecase.SnapshotRecords {
	return usecase.NewSnapshotRecords(c.Source, jsonstore.New(resolve(c.Paths.WorkDir, path)), c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
