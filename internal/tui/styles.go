package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/runoshun/gantt/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Selected   lipgloss.Color
	BarText    lipgloss.Color
	Today      lipgloss.Color
	Grid       lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Background: lipgloss.Color("#2D3436"), // Dark gray
	Text:       lipgloss.Color("#DFE6E9"), // Light gray
	Selected:   lipgloss.Color("#FFEAA7"), // Yellow
	BarText:    lipgloss.Color("#1E272E"), // Near black
	Today:      lipgloss.Color("#FF7675"), // Salmon
	Grid:       lipgloss.Color("#3D4548"),
}

// shadeAmount is how far the elapsed part of a bar is blended toward black.
const shadeAmount = 0.35

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App lipgloss.Style

	// Top bars
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	FilterKey  lipgloss.Style
	FilterVal  lipgloss.Style

	// Legend
	LegendEntry  lipgloss.Style
	LegendActive lipgloss.Style

	// Panes
	PaneTitle        lipgloss.Style
	PaneTitleFocused lipgloss.Style
	Row              lipgloss.Style
	RowSelected      lipgloss.Style
	TickMonth        lipgloss.Style
	TickDetail       lipgloss.Style
	TodayMarker      lipgloss.Style
	Separator        lipgloss.Style

	// Messages
	Detail   lipgloss.Style
	Duration lipgloss.Style
	Status   lipgloss.Style
	ErrorMsg lipgloss.Style
	Empty    lipgloss.Style

	// Help
	Help lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle(),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		FilterKey: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FilterVal: lipgloss.NewStyle().
			Foreground(Colors.Text),

		LegendEntry: lipgloss.NewStyle().
			Foreground(Colors.Text),

		LegendActive: lipgloss.NewStyle().
			Foreground(Colors.Selected).
			Bold(true).
			Underline(true),

		PaneTitle: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Bold(true),

		PaneTitleFocused: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Row: lipgloss.NewStyle().
			Foreground(Colors.Text),

		RowSelected: lipgloss.NewStyle().
			Foreground(Colors.Selected).
			Bold(true),

		TickMonth: lipgloss.NewStyle().
			Foreground(Colors.Text).
			Bold(true),

		TickDetail: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TodayMarker: lipgloss.NewStyle().
			Foreground(Colors.Today),

		Separator: lipgloss.NewStyle().
			Foreground(Colors.Grid),

		Detail: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Duration: lipgloss.NewStyle().
			Foreground(Colors.Success).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(Colors.Success),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error),

		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true).
			Padding(1, 2),

		Help: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(1, 2),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle().
			Foreground(Colors.Text).
			Width(14),
	}
}

// StatusColor returns the bar color of a status class.
func StatusColor(class domain.StatusClass) lipgloss.Color {
	return lipgloss.Color(class.Color())
}

// ShadeColor returns the color used for the elapsed part of a bar.
func ShadeColor(class domain.StatusClass) lipgloss.Color {
	c, err := colorful.Hex(class.Color())
	if err != nil {
		return Colors.Muted
	}
	return lipgloss.Color(c.BlendLab(colorful.Color{}, shadeAmount).Clamped().Hex())
}

// BarStyle returns the style of the plain part of a bar.
func (s Styles) BarStyle(class domain.StatusClass) lipgloss.Style {
	return lipgloss.NewStyle().Background(StatusColor(class)).Foreground(Colors.BarText)
}

// ShadedBarStyle returns the style of the elapsed part of a bar.
func (s Styles) ShadedBarStyle(class domain.StatusClass) lipgloss.Style {
	return lipgloss.NewStyle().Background(ShadeColor(class)).Foreground(Colors.Text)
}

// ApplyColorProfile picks the lipgloss color profile for the TUI.
// NO_COLOR disables colors; otherwise the terminal's capabilities decide,
// upgraded when TERM or COLORTERM advertise more than was detected.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(os.Getenv("TERM"))
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}
