// Package usecase contains the application use cases.
package usecase

import (
	"context"

	"github.com/runoshun/gantt/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput describes where configuration came from, the merged
// result, and whether the selected data source can be built from it.
type ShowConfigOutput struct {
	Effective     *domain.Config
	Warnings      []string // Unknown keys and rejected values found while loading
	MissingSource []string // Keys the selected source kind still needs
	GlobalConfig  domain.ConfigInfo
	LocalConfig   domain.ConfigInfo
}

// SourceReady reports whether every key the source kind needs is set.
func (o *ShowConfigOutput) SourceReady() bool {
	return len(o.MissingSource) == 0
}

// ShowConfig reloads configuration and reports on it.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{configManager: configManager, configLoader: configLoader}
}

// Execute loads the merged configuration. A file that fails to parse is
// an error; unknown keys only produce warnings.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, err
	}
	return &ShowConfigOutput{
		Effective:     cfg,
		Warnings:      cfg.Warnings,
		MissingSource: cfg.Source.Missing(),
		GlobalConfig:  uc.configManager.GetGlobalConfigInfo(),
		LocalConfig:   uc.configManager.GetLocalConfigInfo(),
	}, nil
}
