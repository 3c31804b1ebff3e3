// Package tui provides the interactive Gantt timeline.
package tui

import "github.com/runoshun/gantt/internal/tui/scrollsync"

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota // Timeline navigation
	ModeEdit               // Date edit form
	ModeHelp               // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeEdit:
		return "edit"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeEdit
}

// focusOrder is the tab order of the row panes.
var focusOrder = []scrollsync.PaneID{scrollsync.Labels, scrollsync.Table, scrollsync.Timeline}

func nextFocus(current scrollsync.PaneID) scrollsync.PaneID {
	for i, id := range focusOrder {
		if id == current {
			return focusOrder[(i+1)%len(focusOrder)]
		}
	}
	return scrollsync.Timeline
}
