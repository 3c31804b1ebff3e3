package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewFixture() []*domain.Record {
	rec := func(id, project, status string, start, end int) *domain.Record {
		return &domain.Record{
			ID:          id,
			Name:        "Item " + id,
			Project:     project,
			Responsible: "Ana",
			Status:      status,
			StatusClass: domain.ClassifyStatus(status),
			Start:       domain.Date(2024, 1, start),
			End:         domain.Date(2024, 1, end),
		}
	}
	return []*domain.Record{
		rec("1", "Alpha", "pendente", 1, 5),
		rec("2", "Alpha", "finalizado", 10, 12),
		rec("3", "Beta", "atrasado", 3, 20),
	}
}

func TestBuildView_Execute_All(t *testing.T) {
	clock := &testutil.MockClock{NowTime: domain.Date(2024, 1, 4)}
	uc := NewBuildView(clock)

	out, err := uc.Execute(context.Background(), BuildViewInput{
		Records: viewFixture(),
		State:   domain.NewViewState(),
	})

	require.NoError(t, err)
	assert.False(t, out.Empty())
	require.NotNil(t, out.Layout)
	assert.Len(t, out.Layout.Bars, 3)
	assert.Equal(t, 20, out.Layout.TotalDays)
	assert.True(t, out.Layout.HasToday)
	assert.True(t, out.Layout.Bars[0].Editable)
	assert.Equal(t, []string{"Alpha", "Beta"}, out.Options.Projects)
	assert.Len(t, out.Legend.Entries, 3)
	assert.Equal(t, domain.FilterAll, out.Legend.Active)
	assert.False(t, out.ShowDuration)
	assert.Equal(t, 1, out.StatusCounts[domain.StatusLate])
}

func TestBuildView_Execute_StatusFilter(t *testing.T) {
	state := domain.NewViewState()
	state.Filters.Status = string(domain.StatusLate)

	out, err := NewBuildView(nil).Execute(context.Background(), BuildViewInput{Records: viewFixture(), State: state})

	require.NoError(t, err)
	require.Len(t, out.Visible, 1)
	assert.Equal(t, "3", out.Visible[0].ID)
	assert.Equal(t, string(domain.StatusLate), out.Legend.Active)
	assert.False(t, out.Layout.HasToday)
}

func TestBuildView_Execute_LegendResetsWhenStatusDisappears(t *testing.T) {
	state := domain.NewViewState()
	state.Filters.Project = "Alpha"
	state.Filters.Status = string(domain.StatusLate)

	out, err := NewBuildView(nil).Execute(context.Background(), BuildViewInput{Records: viewFixture(), State: state})

	require.NoError(t, err)
	assert.Equal(t, domain.FilterAll, out.Legend.Active)
	assert.Equal(t, domain.FilterAll, out.Filters.Status)
	assert.Len(t, out.Visible, 2)
	assert.True(t, out.ShowDuration)
	assert.Equal(t, 12, out.Duration)
}

func TestBuildView_Execute_EmptyResult(t *testing.T) {
	state := domain.NewViewState()
	state.Filters.Responsible = "Nobody"

	out, err := NewBuildView(nil).Execute(context.Background(), BuildViewInput{Records: viewFixture(), State: state})

	require.NoError(t, err)
	assert.True(t, out.Empty())
	assert.Nil(t, out.Layout)
	assert.NotNil(t, out.Visible)
	assert.Empty(t, out.Legend.Entries)
	assert.Equal(t, 0, out.Duration)
	assert.False(t, out.ShowDuration)
}

func TestBuildView_Execute_EmptyCollection(t *testing.T) {
	out, err := NewBuildView(nil).Execute(context.Background(), BuildViewInput{State: domain.NewViewState()})

	require.NoError(t, err)
	assert.True(t, out.Empty())
	assert.Nil(t, out.Layout)
}

func TestBuildView_Execute_ProjectsModeShowsDuration(t *testing.T) {
	state := domain.NewViewState().WithMode(domain.ModeProjects)
	state.ReadOnly = true

	out, err := NewBuildView(nil).Execute(context.Background(), BuildViewInput{Records: viewFixture(), State: state})

	require.NoError(t, err)
	assert.True(t, out.ShowDuration)
	assert.Equal(t, 20, out.Duration)
	assert.False(t, out.Layout.Bars[0].Editable)
}

func TestBuildView_Execute_ZoomChangesWidthOnly(t *testing.T) {
	records := viewFixture()
	week := domain.NewViewState()
	day := week
	day.Zoom = domain.ZoomDay

	a, err := NewBuildView(nil).Execute(context.Background(), BuildViewInput{Records: records, State: week})
	require.NoError(t, err)
	b, err := NewBuildView(nil).Execute(context.Background(), BuildViewInput{Records: records, State: day})
	require.NoError(t, err)

	assert.Equal(t, a.Layout.TotalDays, b.Layout.TotalDays)
	assert.Equal(t, a.Layout.Width*4, b.Layout.Width)
	assert.Equal(t, a.Layout.Height, b.Layout.Height)
}
