package tui

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/tui/scrollsync"
	"github.com/runoshun/gantt/internal/testutil"
)

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualClock collects cooldowns so tests decide when they expire.
type manualClock struct {
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) scrollsync.Timer {
	t := &manualTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

// settle expires every live cooldown, including ones started by replays.
func (c *manualClock) settle() {
	for len(c.timers) > 0 {
		t := c.timers[0]
		c.timers = c.timers[1:]
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

func fixtureRecords() []*domain.Record {
	rec := func(id, name, project, responsible, status string, start, end int) *domain.Record {
		return &domain.Record{
			ID:           id,
			Name:         name,
			OriginalName: name,
			Project:      project,
			Responsible:  responsible,
			Status:       status,
			StatusClass:  domain.ClassifyStatus(status),
			Start:        domain.Date(2024, 1, start),
			End:          domain.Date(2024, 1, end),
		}
	}
	records := []*domain.Record{
		rec("1", "Design", "Alpha", "Ana", "em andamento", 1, 10),
		rec("2", "Build", "Alpha", "Bruno", "pendente", 5, 20),
		rec("3", "Review", "Beta", "Ana", "atrasado", 8, 12),
		rec("4", "Ship", "Beta", "Caio", "finalizado", 15, 25),
		rec("5", "Docs", "Gamma", "Ana", "pendente", 2, 6),
		rec("6", "Retro", "Gamma", "Bruno", "cancelado", 26, 31),
	}
	records[0].RealStart = domain.Date(2024, 1, 4)
	records[0].RealEnd = domain.Date(2024, 1, 12)
	return records
}

type harness struct {
	model  *Model
	source *testutil.MockDataSource
	clock  *manualClock
}

func newHarness(t *testing.T, state domain.ViewState) *harness {
	t.Helper()
	source := testutil.NewMockDataSource()
	c := app.NewWithDeps(nil, source, &testutil.MockClock{NowTime: domain.Date(2024, 1, 4)}, &testutil.MockLogger{})

	m := New(c, state)
	clock := &manualClock{}
	m.sync = scrollsync.New(m.labels, m.table, m.timeline, m.header, scrollsync.WithAfterFunc(clock.AfterFunc))
	t.Cleanup(m.Close)

	h := &harness{model: m, source: source, clock: clock}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 12})
	return h
}

func (h *harness) load(records []*domain.Record) {
	h.send(MsgRecordsLoaded{Mode: h.model.state.Mode, Records: records})
	h.clock.settle()
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.model.Update(msg)
	return cmd
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestUpdate_RecordsLoaded(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())

	m := h.model
	assert.False(t, m.loading)
	require.NotNil(t, m.view)
	assert.Len(t, m.view.Visible, 6)
	assert.Equal(t, "1", m.SelectedRecord().ID)
	assert.Equal(t, 3, m.bodyHeight())
	assert.Equal(t, 3, m.timeline.maxTop)
}

func TestUpdate_DropsStaleModeResults(t *testing.T) {
	h := newHarness(t, domain.NewViewState())

	h.send(MsgRecordsLoaded{Mode: domain.ModeProjects, Records: fixtureRecords()})
	assert.Nil(t, h.model.records)
	assert.True(t, h.model.loading)

	h.send(MsgFetchFailed{Mode: domain.ModeProjects, Err: errors.New("boom")})
	assert.NoError(t, h.model.err)
}

func TestUpdate_FetchFailureReplacesTimeline(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())

	h.send(MsgFetchFailed{Mode: domain.ModeTasks, Err: errors.New("HTTP 502")})
	out := h.model.View()
	assert.Contains(t, out, fetchFailedMessage)
	assert.Contains(t, out, "HTTP 502")
	assert.NotContains(t, out, "Design")

	// A later successful fetch clears the failure.
	h.load(fixtureRecords())
	assert.NoError(t, h.model.err)
}

func TestFetch(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.source.Rows[domain.ModeTasks] = []domain.RawRecord{
		testutil.RawRow("T1", "Task", "pendente", domain.Date(2024, 1, 1), domain.Date(2024, 1, 3)),
	}

	msg := h.model.fetch()()
	loaded, ok := msg.(MsgRecordsLoaded)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, domain.ModeTasks, loaded.Mode)
	require.Len(t, loaded.Records, 1)

	h.source.ListErr = errors.New("down")
	msg = h.model.fetch()()
	failed, ok := msg.(MsgFetchFailed)
	require.True(t, ok, "got %T", msg)
	assert.ErrorIs(t, failed.Err, domain.ErrFetchFailure)
}

func TestUpdate_CursorScrollsAllPanes(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())
	m := h.model

	h.press("j", "j", "j")
	assert.Equal(t, 3, m.cursor)
	assert.Equal(t, 1, m.timeline.ScrollTop())
	assert.Equal(t, 1, m.labels.ScrollTop())
	assert.Equal(t, 1, m.table.ScrollTop())

	// The next move lands inside the cooldown and is replayed when it ends.
	h.press("j")
	assert.Equal(t, 2, m.timeline.ScrollTop())
	assert.Equal(t, 1, m.labels.ScrollTop())

	h.clock.settle()
	assert.Equal(t, 2, m.labels.ScrollTop())
	assert.Equal(t, 2, m.table.ScrollTop())

	h.press("k", "k", "k", "k", "k")
	h.clock.settle()
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.labels.ScrollTop())
}

func TestUpdate_HorizontalScrollMovesHeader(t *testing.T) {
	state := domain.NewViewState()
	state.Zoom = domain.ZoomDay
	h := newHarness(t, state)
	h.load(fixtureRecords())
	m := h.model

	h.press("l")
	assert.Equal(t, horizontalStep, m.timeline.ScrollLeft())
	assert.Equal(t, horizontalStep, m.header.ScrollLeft())

	h.clock.settle()
	h.press("h", "h")
	h.clock.settle()
	assert.Equal(t, 0, m.timeline.ScrollLeft())
	assert.Equal(t, 0, m.header.ScrollLeft())
}

func TestUpdate_MouseWheelOnLabels(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())
	m := h.model

	h.send(tea.MouseMsg{X: 2, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1, m.labels.ScrollTop())
	assert.Equal(t, 1, m.timeline.ScrollTop())
	assert.Equal(t, 0, m.cursor, "wheel scrolling keeps the selection")
}

func TestUpdate_Zoom(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())

	h.press("z")
	assert.Equal(t, domain.ZoomMonth, h.model.state.Zoom)
	assert.Equal(t, domain.ZoomMonth, h.model.view.Layout.Zoom)
	h.press("z")
	assert.Equal(t, domain.ZoomDay, h.model.state.Zoom)
}

func TestUpdate_ToggleModeRefetches(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())
	h.press("p")
	require.Equal(t, "Alpha", h.model.state.Filters.Project)

	cmd := h.send(keyMsg("m"))
	require.NotNil(t, cmd)
	m := h.model
	assert.Equal(t, domain.ModeProjects, m.state.Mode)
	assert.Nil(t, m.records)
	assert.True(t, m.loading)
	assert.Equal(t, domain.AllFilters(), m.state.Filters)
	assert.Contains(t, m.View(), loadingMessage)
}

func TestUpdate_FilterCycleAndReset(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())
	m := h.model

	h.press("p")
	assert.Equal(t, "Alpha", m.state.Filters.Project)
	assert.Len(t, m.view.Visible, 2)
	assert.True(t, m.view.ShowDuration)
	assert.Contains(t, m.View(), "Total duration (Tasks): 20 days")

	h.press("o")
	assert.Equal(t, "Ana", m.state.Filters.Responsible)
	assert.Len(t, m.view.Visible, 1)

	h.press("x")
	assert.Equal(t, domain.AllFilters(), m.state.Filters)
	assert.Len(t, m.view.Visible, 6)
}

func TestUpdate_EmptyFilterState(t *testing.T) {
	state := domain.NewViewState()
	state.Filters.Responsible = "Nobody"
	h := newHarness(t, state)
	h.load(fixtureRecords())

	assert.True(t, h.model.view.Empty())
	assert.Contains(t, h.model.View(), emptyMessage)
}

func TestUpdate_LegendKeys(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())
	m := h.model

	first := m.view.Legend.Entries[0].Class
	h.press("1")
	assert.Equal(t, string(first), m.state.Filters.Status)
	assert.True(t, m.view.Legend.IsActive(string(first)))
	for _, r := range m.view.Visible {
		assert.Equal(t, first, r.StatusClass)
	}

	// Clicking the active entry returns to All.
	h.press("1")
	assert.Equal(t, domain.FilterAll, m.state.Filters.Status)

	h.press("2", "0")
	assert.Equal(t, domain.FilterAll, m.state.Filters.Status)

	// Entries beyond the legend are ignored.
	h.press("9")
	assert.Equal(t, domain.FilterAll, m.state.Filters.Status)
}

func TestUpdate_EditFlow(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())
	m := h.model

	h.press("e")
	require.Equal(t, ModeEdit, m.mode)
	assert.Equal(t, "Edit task dates", m.edit.Title)
	assert.Equal(t, "2024-01-04", m.startInput.Value(), "tasks prefill the real start")
	assert.Equal(t, "2024-01-10", m.endInput.Value())
	assert.Contains(t, m.View(), "Deadline")

	// Invalid range stays local.
	m.startInput.SetValue("2024-02-01")
	cmd := h.send(keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.ErrorIs(t, m.formErr, domain.ErrValidation)
	assert.Empty(t, h.source.Updates)

	m.startInput.SetValue("2024-01-02")
	cmd = h.send(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.saving)

	msg := cmd()
	updated, ok := msg.(MsgDatesUpdated)
	require.True(t, ok, "got %T", msg)
	require.Len(t, h.source.Updates, 1)
	assert.Equal(t, testutil.UpdateCall{
		ID:        "1",
		Mode:      domain.ModeTasks,
		StartDate: "2024-01-02 00:00:00",
		EndDate:   "2024-01-10 00:00:00",
	}, h.source.Updates[0])

	refetch := h.send(updated)
	assert.NotNil(t, refetch)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Contains(t, m.status, "Saved 1")
}

func TestUpdate_EditEmptyFieldClearsDate(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())
	m := h.model

	h.press("e")
	m.startInput.SetValue("")
	cmd := h.send(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.NoError(t, m.formErr)

	_ = cmd()
	require.Len(t, h.source.Updates, 1)
	assert.Equal(t, "", h.source.Updates[0].StartDate)
	assert.Equal(t, "2024-01-10 00:00:00", h.source.Updates[0].EndDate)
}

func TestUpdate_EditFailureKeepsFormOpen(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())
	m := h.model

	h.press("e")
	h.send(MsgUpdateFailed{Err: &domain.UpdateFailure{StatusCode: 500, Message: "ID não encontrado."}})
	assert.Equal(t, ModeEdit, m.mode)
	assert.False(t, m.saving)
	assert.Contains(t, m.View(), "ID não encontrado.")

	h.press("esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.NoError(t, m.formErr)
}

func TestUpdate_EditProjectsPrefill(t *testing.T) {
	state := domain.NewViewState()
	state.Mode = domain.ModeProjects
	h := newHarness(t, state)
	h.load(fixtureRecords())

	h.press("e")
	require.Equal(t, ModeEdit, h.model.mode)
	assert.Equal(t, "Planned start", h.model.edit.StartLabel)
	assert.Equal(t, "2024-01-01", h.model.startInput.Value())
}

func TestUpdate_ReadOnlyBlocksEdit(t *testing.T) {
	state := domain.NewViewState()
	state.ReadOnly = true
	h := newHarness(t, state)
	h.load(fixtureRecords())

	cmd := h.send(keyMsg("e"))
	assert.NotNil(t, cmd)
	assert.Equal(t, ModeNormal, h.model.mode)
	assert.Contains(t, h.model.status, "Read-only")
}

func TestUpdate_HelpToggle(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	h.load(fixtureRecords())

	h.press("?")
	assert.Equal(t, ModeHelp, h.model.mode)
	assert.Contains(t, h.model.View(), "clear filters")

	h.press("j")
	assert.Equal(t, ModeNormal, h.model.mode)
	assert.Equal(t, 0, h.model.cursor, "the closing key is not applied")
}

func TestUpdate_RefreshTickReschedules(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	assert.NotNil(t, h.send(MsgRefreshTick{}))
	assert.NotNil(t, h.send(MsgRefetch{}))

	h.model.status = "x"
	h.send(MsgClearStatus{})
	assert.Empty(t, h.model.status)
}

func TestUpdate_CooldownReleasedInLoop(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	released := false
	cmd := h.send(msgCooldown{release: func() { released = true }})
	assert.True(t, released)
	assert.NotNil(t, cmd)
}

func TestAfterFunc_ReleasesOnlyThroughLoop(t *testing.T) {
	c := app.NewWithDeps(nil, testutil.NewMockDataSource(), &testutil.MockClock{NowTime: domain.Date(2024, 1, 4)}, &testutil.MockLogger{})
	m := New(c, domain.NewViewState())
	t.Cleanup(m.Close)

	for range cap(m.cooldowns) {
		m.cooldowns <- func() {}
	}
	var ran atomic.Bool
	m.afterFunc(0, func() { ran.Store(true) })

	time.Sleep(20 * time.Millisecond)
	assert.False(t, ran.Load(), "a saturated loop must not run the release on the timer")

	for range cap(m.cooldowns) {
		(<-m.cooldowns)()
	}
	select {
	case f := <-m.cooldowns:
		f()
	case <-time.After(time.Second):
		t.Fatal("release was dropped")
	}
	assert.True(t, ran.Load())
}

func TestWaitCooldown_EndsOnClose(t *testing.T) {
	c := app.NewWithDeps(nil, testutil.NewMockDataSource(), &testutil.MockClock{NowTime: domain.Date(2024, 1, 4)}, &testutil.MockLogger{})
	m := New(c, domain.NewViewState())

	wait := m.waitCooldown()
	m.Close()
	m.Close()
	assert.Nil(t, wait())
}

func TestUpdate_Quit(t *testing.T) {
	h := newHarness(t, domain.NewViewState())
	cmd := h.send(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
