package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/tui/scrollsync"
)

// Messages shown in place of the timeline.
const (
	loadingMessage     = "Loading records..."
	fetchFailedMessage = "Failed to load data."
	emptyMessage       = "No items for this filter."
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	lines := []string{
		m.viewTitle(),
		m.viewFilters(),
		m.viewLegend(),
	}

	switch {
	case m.mode == ModeHelp:
		lines = append(lines, m.fill(m.help.View(m.keys), m.bodyHeight()+2))
	case m.mode == ModeEdit:
		lines = append(lines, m.fill(m.viewEditForm(), m.bodyHeight()+2))
	case m.err != nil:
		lines = append(lines, m.fill(m.viewError(), m.bodyHeight()+2))
	case m.loading && m.view == nil:
		lines = append(lines, m.fill(m.styles.Empty.Render(loadingMessage), m.bodyHeight()+2))
	case m.view == nil || m.view.Empty():
		lines = append(lines, m.fill(m.styles.Empty.Render(emptyMessage), m.bodyHeight()+2))
	default:
		lines = append(lines, m.viewPaneHeaders()...)
		lines = append(lines, m.viewRows()...)
	}

	lines = append(lines,
		m.viewDetail(),
		m.viewDuration(),
		m.viewStatus(),
		m.viewHelpLine(),
	)
	return m.styles.App.Render(strings.Join(lines, "\n"))
}

// fill pads block to exactly height lines.
func (m *Model) fill(block string, height int) string {
	return lipgloss.NewStyle().Height(height).MaxHeight(height).Render(block)
}

func (m *Model) viewTitle() string {
	title := m.styles.HeaderText.Render("Gantt · " + m.state.Mode.Display())
	zoom := m.styles.FilterKey.Render("  zoom ") + m.styles.FilterVal.Render(m.state.Zoom.Display())
	if m.state.ReadOnly {
		zoom += m.styles.FilterKey.Render("  read-only")
	}

	var count string
	if m.view != nil {
		count = fmt.Sprintf("showing %d of %d", len(m.view.Visible), len(m.records))
	}
	right := m.styles.FilterKey.Render(count)

	left := m.styles.Header.Render(title) + zoom
	spacing := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", spacing) + right
}

func (m *Model) viewFilters() string {
	f := m.state.Filters
	parts := []string{
		m.filterPart("p", "project", f.Project),
		m.filterPart("o", "responsible", f.Responsible),
		m.filterPart("c", "classification", f.Classification),
		m.filterPart("s", "sector", f.Sector),
	}
	return fit(strings.Join(parts, "  "), m.width)
}

func (m *Model) filterPart(k, name, value string) string {
	if value == "" {
		value = "(empty)"
	}
	return m.styles.FilterKey.Render(k+" "+name+": ") + m.styles.FilterVal.Render(value)
}

func (m *Model) viewLegend() string {
	if m.view == nil {
		return ""
	}
	legend := m.view.Legend
	total := 0
	for _, n := range m.view.StatusCounts {
		total += n
	}

	entry := func(active bool, text string) string {
		if active {
			return m.styles.LegendActive.Render(text)
		}
		return m.styles.LegendEntry.Render(text)
	}

	parts := []string{entry(legend.IsActive(domain.FilterAll), fmt.Sprintf("0 All (%d)", total))}
	for i, e := range legend.Entries {
		swatch := lipgloss.NewStyle().Foreground(StatusColor(e.Class)).Render("■")
		text := fmt.Sprintf("%d %s (%d)", i+1, e.Label, m.view.StatusCounts[e.Class])
		parts = append(parts, swatch+" "+entry(legend.IsActive(string(e.Class)), text))
	}
	return fit(strings.Join(parts, "  "), m.width)
}

func (m *Model) paneTitle(id scrollsync.PaneID, text string, width int) string {
	style := m.styles.PaneTitle
	if m.focus == id {
		style = m.styles.PaneTitleFocused
	}
	return style.Render(fit(text, width))
}

func (m *Model) separator() string {
	return m.styles.Separator.Render("│")
}

// viewPaneHeaders renders the pane titles and the two timeline tick rows.
func (m *Model) viewPaneHeaders() []string {
	layout := m.view.Layout
	total := columns(layout.Width)
	tw := m.timelineWidth()
	left := m.header.ScrollLeft()

	months := m.styles.TickMonth.Render(window(tickLine(layout.MonthTicks, total), left, tw))
	details := m.styles.TickDetail.Render(window(tickLine(layout.DetailTicks, total), left, tw))

	sep := m.separator()
	return []string{
		m.paneTitle(scrollsync.Labels, m.state.Mode.Display(), labelsWidth) + sep +
			m.paneTitle(scrollsync.Table, "Start      End        Days", tableWidth) + sep +
			months,
		strings.Repeat(" ", labelsWidth) + sep +
			strings.Repeat(" ", tableWidth) + sep +
			details,
	}
}

// viewRows renders the body of the three row panes. Each pane draws from
// its own scroll offset.
func (m *Model) viewRows() []string {
	layout := m.view.Layout
	bars := layout.Bars
	tw := m.timelineWidth()
	sep := m.separator()

	rows := make([]string, 0, m.bodyHeight())
	for i := range m.bodyHeight() {
		var label, table, timeline string

		if r := m.labels.ScrollTop() + i; r < len(bars) {
			label = m.labelLine(bars[r], r == m.cursor)
		} else {
			label = strings.Repeat(" ", labelsWidth)
		}

		if r := m.table.ScrollTop() + i; r < len(bars) {
			table = m.tableLine(bars[r], r == m.cursor)
		} else {
			table = strings.Repeat(" ", tableWidth)
		}

		if r := m.timeline.ScrollTop() + i; r < len(bars) {
			timeline = window(m.timelineLine(layout, bars[r]), m.timeline.ScrollLeft(), tw)
		} else {
			timeline = window(m.gridSpan(layout, 0, columns(layout.Width)), m.timeline.ScrollLeft(), tw)
		}

		rows = append(rows, label+sep+table+sep+timeline)
	}
	return rows
}

func (m *Model) viewError() string {
	var b strings.Builder
	b.WriteString(m.styles.ErrorMsg.Render(fetchFailedMessage))
	b.WriteString("\n")
	b.WriteString(m.styles.Detail.Render(m.err.Error()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("Press r to retry."))
	return m.styles.Empty.Render(b.String())
}

// viewDetail shows the row title and tooltip of the selected record.
func (m *Model) viewDetail() string {
	r := m.SelectedRecord()
	if r == nil || m.mode != ModeNormal || m.err != nil {
		return ""
	}
	text := r.RowTitle(m.state.Mode) + " · " + strings.ReplaceAll(domain.Tooltip(r), "\n", " · ")
	return m.styles.Detail.Render(fit(text, m.width))
}

func (m *Model) viewDuration() string {
	if m.view == nil || !m.view.ShowDuration || m.err != nil {
		return ""
	}
	return m.styles.Duration.Render(fmt.Sprintf("Total duration (%s): %d days", m.state.Mode.Display(), m.view.Duration))
}

func (m *Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	return m.styles.Status.Render(m.status)
}

func (m *Model) viewHelpLine() string {
	if m.mode == ModeEdit {
		return m.help.ShortHelpView(m.keys.FormHelp())
	}
	if m.mode == ModeHelp {
		return m.styles.Help.Render("press any key to close help")
	}
	return m.help.View(m.keys)
}

// viewEditForm renders the date edit dialog.
func (m *Model) viewEditForm() string {
	title := m.styles.DialogTitle.Render(m.edit.Title)
	id := m.styles.FilterKey.Render("ID " + m.edit.ID)

	start := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.DialogPrompt.Render(m.edit.StartLabel), m.startInput.View())
	end := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.DialogPrompt.Render(m.edit.EndLabel), m.endInput.View())

	var status string
	switch {
	case m.saving:
		status = m.styles.Help.Render("Saving...")
	case m.formErr != nil:
		status = m.styles.ErrorMsg.Render(m.formErr.Error())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		id,
		"",
		start,
		end,
		"",
		status,
	)
	return m.styles.Dialog.Render(content)
}
