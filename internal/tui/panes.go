package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/runoshun/gantt/internal/domain"
)

// pxPerColumn is how many layout pixels one terminal column covers.
const pxPerColumn = 5

// Pane widths in columns.
const (
	labelsWidth = 28
	tableWidth  = 31
)

// pane is a scroll position bounded by its content.
// It implements scrollsync.Pane.
type pane struct {
	top     int
	left    int
	maxTop  int
	maxLeft int
}

func (p *pane) ScrollTop() int  { return p.top }
func (p *pane) ScrollLeft() int { return p.left }

func (p *pane) SetScrollTop(top int) error {
	p.top = clamp(top, 0, p.maxTop)
	return nil
}

func (p *pane) SetScrollLeft(left int) error {
	p.left = clamp(left, 0, p.maxLeft)
	return nil
}

// setBounds updates the limits and clamps the current offsets.
func (p *pane) setBounds(maxTop, maxLeft int) {
	p.maxTop = max(0, maxTop)
	p.maxLeft = max(0, maxLeft)
	p.top = clamp(p.top, 0, p.maxTop)
	p.left = clamp(p.left, 0, p.maxLeft)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// columns converts a pixel offset or width to terminal columns.
func columns(px int) int {
	return px / pxPerColumn
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// labelLine renders one row of the labels pane.
func (m *Model) labelLine(bar domain.Bar, selected bool) string {
	prefix := "  "
	style := m.styles.Row
	if selected {
		prefix = "▶ "
		style = m.styles.RowSelected
	}
	return style.Render(fit(prefix+bar.Label, labelsWidth))
}

// tableLine renders one row of the data table pane.
func (m *Model) tableLine(bar domain.Bar, selected bool) string {
	style := m.styles.Row
	if selected {
		style = m.styles.RowSelected
	}
	cells := domain.FormatForDisplay(bar.Start) + " " +
		domain.FormatForDisplay(bar.End) + " " +
		durationLabel(bar.DurationDays)
	return style.Render(fit(cells, tableWidth))
}

func durationLabel(days int) string {
	return strconv.Itoa(days) + " days"
}

// timelineLine renders the full-width timeline row of bar. The caller cuts
// the visible window out of it.
func (m *Model) timelineLine(layout *domain.Layout, bar domain.Bar) string {
	total := columns(layout.Width)
	start := clamp(columns(bar.BarLeft), 0, total)
	width := max(1, columns(bar.BarWidth))
	end := clamp(start+width, 0, total)
	width = end - start

	shaded := int(float64(width) * bar.GradientFraction / 100)
	text := fit(" "+bar.Label, width)

	var b strings.Builder
	b.WriteString(m.gridSpan(layout, 0, start))
	if shaded > 0 {
		b.WriteString(m.styles.ShadedBarStyle(bar.StatusClass).Render(ansi.Cut(text, 0, shaded)))
	}
	if width > shaded {
		b.WriteString(m.styles.BarStyle(bar.StatusClass).Render(ansi.Cut(text, shaded, width)))
	}
	b.WriteString(m.gridSpan(layout, end, total))
	return b.String()
}

// gridSpan renders empty timeline columns [from, to), marking today.
func (m *Model) gridSpan(layout *domain.Layout, from, to int) string {
	if from >= to {
		return ""
	}
	today := -1
	if layout.HasToday {
		today = columns(layout.TodayLeft)
	}
	if today < from || today >= to {
		return strings.Repeat(" ", to-from)
	}
	return strings.Repeat(" ", today-from) +
		m.styles.TodayMarker.Render("│") +
		strings.Repeat(" ", to-today-1)
}

// tickLine lays tick labels out on a full-width line. Labels that would
// overlap the previous one are dropped.
func tickLine(ticks []domain.Tick, total int) string {
	line := []rune(strings.Repeat(" ", total))
	next := 0
	for _, t := range ticks {
		col := columns(t.Left)
		label := []rune(t.Label)
		if col < next || col+len(label) > total {
			continue
		}
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	return string(line)
}

// window cuts the visible columns out of a full-width line.
func window(line string, left, width int) string {
	return fit(ansi.Cut(line, left, left+width), width)
}
