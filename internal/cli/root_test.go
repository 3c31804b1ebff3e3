package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
)

// stubLaunchTUI replaces launchTUIFunc for the duration of the test and
// returns a pointer to the state it was called with.
func stubLaunchTUI(t *testing.T) **domain.ViewState {
	t.Helper()
	originalFunc := launchTUIFunc
	t.Cleanup(func() {
		launchTUIFunc = originalFunc
	})

	var got *domain.ViewState
	launchTUIFunc = func(_ context.Context, _ *app.Container, state domain.ViewState) error {
		got = &state
		return nil
	}
	return &got
}

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	got := stubLaunchTUI(t)

	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{})
	err := root.Execute()

	require.NoError(t, err)
	require.NotNil(t, *got, "launchTUIFunc should be called when no arguments are provided")
	assert.Equal(t, domain.NewViewState(), **got)
}

func TestNewRootCommand_UsesConfiguredView(t *testing.T) {
	got := stubLaunchTUI(t)

	cfg := domain.NewDefaultConfig()
	cfg.View.Mode = domain.ModeProjects
	cfg.View.Zoom = domain.ZoomWeek
	c := newTestContainer(t, cfg)

	root := NewRootCommand(c, "test-version")
	root.SetArgs([]string{})
	require.NoError(t, root.Execute())

	require.NotNil(t, *got)
	assert.Equal(t, domain.ModeProjects, (*got).Mode)
	assert.Equal(t, domain.ZoomWeek, (*got).Zoom)
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	got := stubLaunchTUI(t)

	root := NewRootCommand(nil, "test-version")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	err := root.Execute()

	assert.NoError(t, err)
	assert.Nil(t, *got, "launchTUIFunc should NOT be called when --help is provided")
	assert.Contains(t, out.String(), "Timeline:")
	assert.Contains(t, out.String(), "export")
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	stubLaunchTUI(t)

	cfg := domain.NewDefaultConfig()
	cfg.Warnings = []string{"unknown key view.colour"}
	c := newTestContainer(t, cfg)

	root := NewRootCommand(c, "test-version")
	var errOut bytes.Buffer
	root.SetErr(&errOut)
	root.SetArgs([]string{})
	require.NoError(t, root.Execute())

	assert.Equal(t, "Warning: unknown key view.colour\n", errOut.String())
}

func TestTUICommand_FlagsSetInitialView(t *testing.T) {
	got := stubLaunchTUI(t)
	c := newTestContainer(t, nil)

	root := NewRootCommand(c, "test-version")
	root.SetArgs([]string{"tui", "--mode", "projects", "--zoom", "month", "--project", "Alpha", "--status", "late"})
	require.NoError(t, root.Execute())

	require.NotNil(t, *got)
	state := **got
	assert.Equal(t, domain.ModeProjects, state.Mode)
	assert.Equal(t, domain.ZoomMonth, state.Zoom)
	assert.Equal(t, "Alpha", state.Filters.Project)
	assert.Equal(t, string(domain.StatusLate), state.Filters.Status)
	assert.Equal(t, domain.FilterAll, state.Filters.Sector)
}

func TestLaunchTUI_NilContainer(t *testing.T) {
	err := launchTUI(context.Background(), nil, domain.NewViewState())
	assert.ErrorIs(t, err, domain.ErrSourceNotReady)
}

func TestTUICommand_ZoomFlag(t *testing.T) {
	c := newTestContainer(t, nil)
	cmd := newTUICommand(c)

	flag := cmd.Flags().Lookup("zoom")
	require.NotNil(t, flag)
	assert.Equal(t, "Timeline zoom: day, day_compact, week or month", flag.Usage)

	out, _, err := execute(t, c, "__complete", "tui", "--zoom", "")
	require.NoError(t, err)
	assert.Contains(t, out, "day\nday_compact\nweek\nmonth\n")
}
