package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/gantt/internal/domain"
)

// ExportViewInput contains the parameters for exporting a view.
type ExportViewInput struct {
	Writer io.Writer           // Destination (required)
	Title  string              // Document title; defaults to the mode name
	Format domain.ExportFormat // html, json or yaml
	State  domain.ViewState    // View selection
}

// ExportViewOutput summarizes the written document.
type ExportViewOutput struct {
	Visible int // Number of records rendered
}

// ExportView fetches a collection, builds the view and writes it in one format.
type ExportView struct {
	source    domain.DataSource
	exporters map[domain.ExportFormat]domain.Exporter
	clock     domain.Clock
	logger    domain.Logger
}

// NewExportView creates a new ExportView use case.
func NewExportView(
	source domain.DataSource,
	exporters map[domain.ExportFormat]domain.Exporter,
	clock domain.Clock,
	logger domain.Logger,
) *ExportView {
	return &ExportView{
		source:    source,
		exporters: exporters,
		clock:     clock,
		logger:    logger,
	}
}

// Execute writes the export document to in.Writer.
func (uc *ExportView) Execute(ctx context.Context, in ExportViewInput) (*ExportViewOutput, error) {
	exporter, ok := uc.exporters[in.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format %q", in.Format)
	}

	fetched, err := NewFetchRecords(uc.source, uc.logger).Execute(ctx, FetchRecordsInput{Mode: in.State.Mode})
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	view, err := buildView(fetched.Records, in.State, now)
	if err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = fetched.Mode.Display() + " timeline"
	}
	doc := &domain.ExportDocument{
		Generated:    now,
		Layout:       view.Layout,
		Title:        title,
		Mode:         fetched.Mode,
		Zoom:         domain.ParseZoom(string(in.State.Zoom)),
		Records:      view.Visible,
		Legend:       view.Legend.Entries,
		Filters:      view.Filters,
		ActiveStatus: view.Legend.Active,
		Duration:     view.Duration,
		ShowDuration: view.ShowDuration,
	}

	if err := exporter.Export(in.Writer, doc); err != nil {
		return nil, fmt.Errorf("export %s: %w", in.Format, err)
	}
	return &ExportViewOutput{Visible: len(view.Visible)}, nil
}
