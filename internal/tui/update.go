package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/tui/scrollsync"
	"github.com/runoshun/gantt/internal/usecase"
)

// horizontalStep is how many columns one left/right key press scrolls.
const horizontalStep = 8

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgRecordsLoaded:
		if msg.Mode != m.state.Mode {
			// Answer to a fetch for a mode the user already left.
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.records = msg.Records
		m.rebuild()
		return m, nil

	case MsgFetchFailed:
		if msg.Mode != m.state.Mode {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case MsgDatesUpdated:
		m.closeEditForm()
		m.status = fmt.Sprintf("Saved %s: %s to %s", msg.ID, msg.StartDate, msg.EndDate)
		return m, tea.Batch(m.scheduleRefetch(), clearStatusLater())

	case MsgUpdateFailed:
		m.saving = false
		m.formErr = msg.Err
		return m, nil

	case MsgRefreshTick:
		return m, tea.Batch(m.fetch(), m.scheduleRefresh())

	case MsgRefetch:
		return m, m.fetch()

	case MsgClearStatus:
		m.status = ""
		return m, nil

	case msgCooldown:
		msg.release()
		return m, m.waitCooldown()
	}

	// Forward remaining messages (cursor blink) to the focused input.
	if m.mode == ModeEdit {
		return m, m.updateInputs(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeEdit:
		return m.handleEditKey(msg)
	case ModeHelp:
		if msg.String() == "ctrl+c" {
			m.Close()
			return m, tea.Quit
		}
		m.mode = ModeNormal
		m.help.ShowAll = false
		return m, nil
	case ModeNormal:
		return m.handleNormalKey(msg)
	}
	return m, nil
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		m.help.ShowAll = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.scrollHorizontal(-horizontalStep)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.scrollHorizontal(horizontalStep)
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.focus = nextFocus(m.focus)
		return m, nil

	case key.Matches(msg, m.keys.Today):
		m.scrollToToday()
		return m, nil

	case key.Matches(msg, m.keys.Zoom):
		m.setZoom(m.state.Zoom.Next())
		return m, nil

	case key.Matches(msg, m.keys.ToggleMode):
		return m, m.switchMode(m.state.Mode.Toggle())

	case key.Matches(msg, m.keys.Refresh):
		m.loading = m.records == nil
		return m, m.fetch()

	case key.Matches(msg, m.keys.Project):
		m.cycleFilter(func(f *domain.Filters, o domain.FilterOptions) { f.Project = domain.Cycle(f.Project, o.Projects) })
		return m, nil

	case key.Matches(msg, m.keys.Responsible):
		m.cycleFilter(func(f *domain.Filters, o domain.FilterOptions) {
			f.Responsible = domain.Cycle(f.Responsible, o.Responsibles)
		})
		return m, nil

	case key.Matches(msg, m.keys.Classification):
		m.cycleFilter(func(f *domain.Filters, o domain.FilterOptions) {
			f.Classification = domain.Cycle(f.Classification, o.Classifications)
		})
		return m, nil

	case key.Matches(msg, m.keys.Sector):
		m.cycleFilter(func(f *domain.Filters, o domain.FilterOptions) { f.Sector = domain.Cycle(f.Sector, o.Sectors) })
		return m, nil

	case key.Matches(msg, m.keys.ResetFilters):
		m.state = m.state.ResetFilters()
		m.rebuild()
		return m, nil

	case key.Matches(msg, m.keys.Legend):
		m.clickLegend(msg.String())
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m, m.openEditForm()
	}
	return m, nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.closeEditForm()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitEdit()

	case key.Matches(msg, m.keys.NextField):
		if m.startInput.Focused() {
			m.startInput.Blur()
			m.endInput.Focus()
		} else {
			m.endInput.Blur()
			m.startInput.Focus()
		}
		return m, textinput.Blink
	}
	return m, m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.startInput, cmd = m.startInput.Update(msg)
	cmds = append(cmds, cmd)
	m.endInput, cmd = m.endInput.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// submitEdit validates the form locally and sends the update.
// Validation failures never reach the data source.
func (m *Model) submitEdit() tea.Cmd {
	if m.saving {
		return nil
	}
	in := usecase.UpdateDatesInput{
		ID:        m.edit.ID,
		Mode:      m.edit.Mode,
		StartDate: m.startInput.Value(),
		EndDate:   m.endInput.Value(),
		ReadOnly:  m.state.ReadOnly,
	}
	if _, _, err := usecase.ValidateDates(in.ID, in.StartDate, in.EndDate); err != nil {
		m.formErr = err
		return nil
	}
	m.formErr = nil
	m.saving = true
	return m.updateDates(in)
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollPane(m.paneAt(msg.X), -1)
	case tea.MouseButtonWheelDown:
		m.scrollPane(m.paneAt(msg.X), 1)
	case tea.MouseButtonWheelLeft:
		m.scrollHorizontal(-horizontalStep)
	case tea.MouseButtonWheelRight:
		m.scrollHorizontal(horizontalStep)
	}
	return m, nil
}

// paneAt returns the row pane under screen column x.
func (m *Model) paneAt(x int) scrollsync.PaneID {
	switch {
	case x < labelsWidth:
		return scrollsync.Labels
	case x < labelsWidth+1+tableWidth:
		return scrollsync.Table
	default:
		return scrollsync.Timeline
	}
}

// scrollPane scrolls one row pane vertically without moving the cursor.
func (m *Model) scrollPane(id scrollsync.PaneID, delta int) {
	p := m.paneByID(id)
	_ = p.SetScrollTop(p.ScrollTop() + delta)
	m.scrolled(id)
}

func (m *Model) moveCursor(delta int) {
	if m.view == nil || len(m.view.Visible) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.view.Visible)-1)
	m.ensureCursorVisible()
}

func (m *Model) scrollHorizontal(delta int) {
	_ = m.timeline.SetScrollLeft(m.timeline.ScrollLeft() + delta)
	m.scrolled(scrollsync.Timeline)
}

// scrollToToday centers the today marker in the timeline pane.
func (m *Model) scrollToToday() {
	if m.view == nil || m.view.Layout == nil || !m.view.Layout.HasToday {
		m.status = "Today is outside the timeline"
		return
	}
	_ = m.timeline.SetScrollLeft(columns(m.view.Layout.TodayLeft) - m.timelineWidth()/2)
	m.scrolled(scrollsync.Timeline)
}

// setZoom changes the zoom keeping the leftmost visible day in place.
func (m *Model) setZoom(z domain.Zoom) {
	oldPx := m.state.Zoom.PxPerDay()
	m.state.Zoom = z
	left := m.timeline.ScrollLeft() * z.PxPerDay() / oldPx
	m.rebuild()
	_ = m.timeline.SetScrollLeft(left)
	m.scrolled(scrollsync.Timeline)
}

// switchMode drops the loaded collection and fetches the other one.
// Every filter resets.
func (m *Model) switchMode(mode domain.Mode) tea.Cmd {
	m.state = m.state.WithMode(mode)
	m.records = nil
	m.view = nil
	m.err = nil
	m.cursor = 0
	m.loading = true
	m.updateLayoutSizes()
	return m.fetch()
}

func (m *Model) cycleFilter(next func(*domain.Filters, domain.FilterOptions)) {
	if m.view == nil {
		return
	}
	next(&m.state.Filters, m.view.Options)
	m.cursor = 0
	m.rebuild()
}

// clickLegend applies a legend click for a digit key.
func (m *Model) clickLegend(k string) {
	if m.view == nil {
		return
	}
	i, err := strconv.Atoi(k)
	if err != nil {
		return
	}
	legend, ok := m.view.Legend.ClickIndex(i)
	if !ok {
		return
	}
	m.state.Filters.Status = legend.Active
	m.cursor = 0
	m.rebuild()
}
