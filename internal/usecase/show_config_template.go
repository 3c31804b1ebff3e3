package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/gantt/internal/domain"
)

// ShowConfigTemplateInput contains the input for the ShowConfigTemplate use case.
type ShowConfigTemplateInput struct {
	Config *domain.Config     // Values rendered into the template; nil uses defaults
	Source domain.SourceKind // Overrides [source] kind when set
}

// ShowConfigTemplateOutput contains the output of the ShowConfigTemplate use case.
type ShowConfigTemplateOutput struct {
	Template string
}

// ShowConfigTemplate renders a configuration template without writing it.
type ShowConfigTemplate struct{}

// NewShowConfigTemplate creates a new ShowConfigTemplate use case.
func NewShowConfigTemplate() *ShowConfigTemplate {
	return &ShowConfigTemplate{}
}

// Execute renders the template.
func (uc *ShowConfigTemplate) Execute(_ context.Context, in ShowConfigTemplateInput) (*ShowConfigTemplateOutput, error) {
	cfg, err := templateConfig(in.Config, in.Source)
	if err != nil {
		return nil, err
	}
	return &ShowConfigTemplateOutput{Template: domain.RenderConfigTemplate(cfg)}, nil
}

// templateConfig returns a copy of base (or the defaults) with the source
// kind replaced. base is never modified.
func templateConfig(base *domain.Config, kind domain.SourceKind) (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()
	if base != nil {
		copied := *base
		cfg = &copied
	}
	if kind == "" {
		return cfg, nil
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSourceKind, kind)
	}
	cfg.Source.Kind = kind
	return cfg, nil
}
