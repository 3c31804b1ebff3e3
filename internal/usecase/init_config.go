package usecase

import (
	"context"

	"github.com/runoshun/gantt/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Config *domain.Config     // Values rendered into the file; nil uses defaults
	Source domain.SourceKind // Overrides [source] kind when set
	Global bool              // Write the global file instead of ./.gantt.toml
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path          string
	MissingSource []string // Keys still to fill in for the chosen source kind
}

// InitConfig writes a commented configuration file.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{configManager: configManager}
}

// Execute writes the file. An existing file is never overwritten
// (domain.ErrConfigExists).
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg, err := templateConfig(in.Config, in.Source)
	if err != nil {
		return nil, err
	}

	info := uc.configManager.GetLocalConfigInfo()
	write := uc.configManager.InitLocalConfig
	if in.Global {
		info = uc.configManager.GetGlobalConfigInfo()
		write = uc.configManager.InitGlobalConfig
	}
	if err := write(cfg); err != nil {
		return nil, err
	}

	return &InitConfigOutput{Path: info.Path, MissingSource: cfg.Source.Missing()}, nil
}
