package usecase

import (
	"context"
	"time"

	"github.com/runoshun/gantt/internal/domain"
)

// BuildViewInput contains the full collection and the view selection.
type BuildViewInput struct {
	Records []*domain.Record // Full collection as fetched
	State   domain.ViewState // Filters, zoom, mode and read-only flag
}

// BuildViewOutput is everything a canvas needs to draw one frame.
// Fields are ordered to minimize memory padding.
type BuildViewOutput struct {
	Layout       *domain.Layout             // nil when Visible is empty
	Visible      []*domain.Record           // Records passing every filter, in source order
	StatusCounts map[domain.StatusClass]int // Per-class counts before the status filter
	Options      domain.FilterOptions       // Selector choices from the full collection
	Legend       domain.Legend              // Present statuses and the active one
	Filters      domain.Filters             // Effective filters after legend reconciliation
	Duration     int                        // Span days of Visible
	ShowDuration bool                       // Whether the total duration is displayed
}

// Empty reports whether no record passed the filters.
func (o *BuildViewOutput) Empty() bool {
	return len(o.Visible) == 0
}

// BuildView runs the filter, legend and layout stages over a collection.
type BuildView struct {
	clock domain.Clock
}

// NewBuildView creates a new BuildView use case.
func NewBuildView(clock domain.Clock) *BuildView {
	return &BuildView{
		clock: clock,
	}
}

// Execute builds the view. It never fails on an empty result: the output
// then has no layout and Empty reports true.
func (uc *BuildView) Execute(_ context.Context, in BuildViewInput) (*BuildViewOutput, error) {
	var today time.Time
	if uc.clock != nil {
		today = uc.clock.Now()
	}
	return buildView(in.Records, in.State, today)
}

func buildView(records []*domain.Record, state domain.ViewState, today time.Time) (*BuildViewOutput, error) {
	filters := state.Filters

	// The legend reflects every dimension except status, so a status that
	// disappears under another filter resets the legend to ALL.
	base := domain.ApplyFilters(records, filters.WithoutStatus())
	legend := domain.NewLegend(base, filters.Status)
	filters.Status = legend.Active

	counts := make(map[domain.StatusClass]int)
	for _, r := range base {
		counts[r.StatusClass]++
	}

	visible := domain.ApplyFilters(base, domain.Filters{
		Project:        domain.FilterAll,
		Responsible:    domain.FilterAll,
		Classification: domain.FilterAll,
		Sector:         domain.FilterAll,
		Status:         filters.Status,
	})

	out := &BuildViewOutput{
		Visible:      visible,
		StatusCounts: counts,
		Options:      domain.CollectFilterOptions(records),
		Legend:       legend,
		Filters:      filters,
		Duration:     domain.ProjectDuration(visible),
		ShowDuration: state.Mode == domain.ModeProjects || (filters.Project != domain.FilterAll && len(visible) > 0),
	}
	if len(visible) == 0 {
		return out, nil
	}

	layout, err := domain.ComputeLayout(visible, domain.LayoutOptions{
		Today:    today,
		Zoom:     state.Zoom,
		Editable: !state.ReadOnly,
	})
	if err != nil {
		return nil, err
	}
	out.Layout = layout
	return out, nil
}
