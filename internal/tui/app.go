package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/tui/scrollsync"
	"github.com/runoshun/gantt/internal/usecase"
)

// statusDuration is how long a status message stays on screen.
const statusDuration = 4 * time.Second

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	config    *domain.Config
	err       error // Last fetch failure; replaces the timeline
	formErr   error // Last edit failure; shown inside the form

	// Loaded data
	records []*domain.Record
	view    *usecase.BuildViewOutput

	// Scrolling
	sync      *scrollsync.Synchronizer
	labels    *pane
	table     *pane
	timeline  *pane
	header    *pane
	cooldowns chan func()
	done      chan struct{}
	closeOnce sync.Once

	// Components
	keys       KeyMap
	styles     Styles
	help       help.Model
	startInput textinput.Model
	endInput   textinput.Model
	edit       domain.EditTarget
	state      domain.ViewState
	status     string

	// Numeric state (smaller types last)
	mode    Mode
	focus   scrollsync.PaneID
	width   int
	height  int
	cursor  int
	loading bool
	saving  bool
}

// New creates a new TUI Model showing state.
func New(c *app.Container, state domain.ViewState) *Model {
	cfg := c.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10

	m := &Model{
		container:  c,
		config:     cfg,
		labels:     &pane{},
		table:      &pane{},
		timeline:   &pane{},
		header:     &pane{},
		cooldowns:  make(chan func(), 16),
		done:       make(chan struct{}),
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		help:       help.New(),
		startInput: si,
		endInput:   ei,
		state:      state,
		mode:       ModeNormal,
		focus:      scrollsync.Timeline,
		loading:    true,
	}
	m.sync = scrollsync.New(m.labels, m.table, m.timeline, m.header,
		scrollsync.WithAfterFunc(m.afterFunc))
	return m
}

// afterFunc schedules cooldown expiry through the event loop so panes are
// only touched from Update.
func (m *Model) afterFunc(d time.Duration, f func()) scrollsync.Timer {
	return time.AfterFunc(d, func() {
		select {
		case m.cooldowns <- f:
		case <-m.done:
		}
	})
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetch(),
		m.waitCooldown(),
		m.scheduleRefresh(),
	)
}

// State returns the current view state.
func (m *Model) State() domain.ViewState {
	return m.state
}

// fetch returns a command that loads the collection of the current mode.
func (m *Model) fetch() tea.Cmd {
	mode := m.state.Mode
	return func() tea.Msg {
		out, err := m.container.FetchRecordsUseCase().Execute(context.Background(), usecase.FetchRecordsInput{Mode: mode})
		if err != nil {
			return MsgFetchFailed{Err: err, Mode: mode}
		}
		return MsgRecordsLoaded{Records: out.Records, Mode: out.Mode}
	}
}

// updateDates returns a command that saves the edit form.
func (m *Model) updateDates(in usecase.UpdateDatesInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.UpdateDatesUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgUpdateFailed{Err: err}
		}
		return MsgDatesUpdated{ID: in.ID, StartDate: out.StartDate, EndDate: out.EndDate}
	}
}

func (m *Model) waitCooldown() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.cooldowns:
			return msgCooldown{release: f}
		case <-m.done:
			return nil
		}
	}
}

func (m *Model) scheduleRefresh() tea.Cmd {
	if m.config.Refresh.Interval <= 0 {
		return nil
	}
	return tea.Tick(m.config.Refresh.Interval, func(time.Time) tea.Msg {
		return MsgRefreshTick{}
	})
}

func (m *Model) scheduleRefetch() tea.Cmd {
	return tea.Tick(m.config.Refresh.AfterEdit, func(time.Time) tea.Msg {
		return MsgRefetch{}
	})
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return MsgClearStatus{}
	})
}

// rebuild recomputes the view from the loaded records and the view state,
// keeping the scroll position.
func (m *Model) rebuild() {
	if m.records == nil {
		m.view = nil
		return
	}
	view, err := m.container.BuildViewUseCase().Execute(context.Background(), usecase.BuildViewInput{
		Records: m.records,
		State:   m.state,
	})
	if err != nil {
		m.err = err
		m.view = nil
		return
	}
	m.view = view
	m.state.Filters = view.Filters
	m.cursor = clamp(m.cursor, 0, max(0, len(view.Visible)-1))
	m.updateLayoutSizes()
}

// updateLayoutSizes recomputes pane bounds from the window size and view,
// then re-applies the preserved offsets to every pane.
func (m *Model) updateLayoutSizes() {
	rows, cols := 0, 0
	if m.view != nil && m.view.Layout != nil {
		rows = len(m.view.Layout.Bars)
		cols = columns(m.view.Layout.Width)
	}
	body := m.bodyHeight()
	tw := m.timelineWidth()
	for _, p := range []*pane{m.labels, m.table} {
		p.setBounds(rows-body, 0)
	}
	m.timeline.setBounds(rows-body, cols-tw)
	m.header.setBounds(0, cols-tw)

	top, left := m.timeline.ScrollTop(), m.timeline.ScrollLeft()
	_ = m.sync.Restore(top, left)
	m.ensureCursorVisible()
}

// chromeHeight is the number of lines around the pane bodies.
const chromeHeight = 9

func (m *Model) bodyHeight() int {
	return max(1, m.height-chromeHeight)
}

func (m *Model) timelineWidth() int {
	return max(10, m.width-labelsWidth-tableWidth-2)
}

// SelectedRecord returns the record under the cursor, or nil.
func (m *Model) SelectedRecord() *domain.Record {
	if m.view == nil || m.cursor < 0 || m.cursor >= len(m.view.Visible) {
		return nil
	}
	return m.view.Visible[m.cursor]
}

// focusedPane returns the pane that has keyboard focus.
func (m *Model) focusedPane() *pane {
	return m.paneByID(m.focus)
}

func (m *Model) paneByID(id scrollsync.PaneID) *pane {
	switch id {
	case scrollsync.Labels:
		return m.labels
	case scrollsync.Table:
		return m.table
	case scrollsync.Header:
		return m.header
	default:
		return m.timeline
	}
}

// ensureCursorVisible scrolls the focused pane so the cursor row is shown
// and propagates the offset.
func (m *Model) ensureCursorVisible() {
	p := m.focusedPane()
	body := m.bodyHeight()
	top := p.ScrollTop()
	switch {
	case m.cursor < top:
		top = m.cursor
	case m.cursor >= top+body:
		top = m.cursor - body + 1
	default:
		return
	}
	_ = p.SetScrollTop(top)
	m.scrolled(m.focus)
}

// scrolled reports a scroll of src to the synchronizer.
func (m *Model) scrolled(src scrollsync.PaneID) {
	if _, err := m.sync.OnScroll(src); err != nil && m.container.Logger != nil {
		m.container.Logger.Warn(m.state.Mode, "tui", "scroll sync: "+err.Error())
	}
}

// openEditForm prefills the form from the selected record.
func (m *Model) openEditForm() tea.Cmd {
	r := m.SelectedRecord()
	if r == nil {
		return nil
	}
	if m.state.ReadOnly {
		m.status = "Read-only: editing is disabled"
		return clearStatusLater()
	}
	if r.ID == "" {
		m.status = "This record has no ID and cannot be edited"
		return clearStatusLater()
	}
	m.edit = domain.NewEditTarget(r, m.state.Mode)
	m.startInput.SetValue(domain.FormatForInput(m.edit.Start))
	m.endInput.SetValue(domain.FormatForInput(m.edit.End))
	m.startInput.Focus()
	m.endInput.Blur()
	m.formErr = nil
	m.saving = false
	m.mode = ModeEdit
	return textinput.Blink
}

func (m *Model) closeEditForm() {
	m.mode = ModeNormal
	m.formErr = nil
	m.saving = false
	m.startInput.Blur()
	m.endInput.Blur()
}

// Close releases the scroll cooldown timer and any cooldown still waiting
// for the event loop.
func (m *Model) Close() {
	m.sync.Close()
	m.closeOnce.Do(func() { close(m.done) })
}
