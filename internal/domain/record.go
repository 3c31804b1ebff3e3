// Package domain contains core business entities, ports and the timeline engine.
package domain

import (
	"strings"
	"time"
)

// Mode selects which collection the data source returns.
type Mode string

const (
	ModeTasks    Mode = "TASKS"
	ModeProjects Mode = "PROJECTS"
)

// ParseMode parses a mode name case-insensitively. Unknown values yield ModeTasks.
func ParseMode(s string) Mode {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeProjects, "PROJECT":
		return ModeProjects
	default:
		return ModeTasks
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeProjects {
		return ModeTasks
	}
	return ModeProjects
}

// Display returns a human-readable name for the mode.
func (m Mode) Display() string {
	if m == ModeProjects {
		return "Projects"
	}
	return "Tasks"
}

// Record is a task or project normalized from a raw data source row.
// Fields are ordered to minimize memory padding.
type Record struct {
	Start          time.Time   `json:"startDate" yaml:"startDate"`                            // Planned start (UTC midnight)
	End            time.Time   `json:"endDate" yaml:"endDate"`                                // Planned end, inclusive (UTC midnight)
	RealStart      time.Time   `json:"realStartDate,omitzero" yaml:"realStartDate,omitempty"` // Actual start (zero = not tracked)
	RealEnd        time.Time   `json:"realEndDate,omitzero" yaml:"realEndDate,omitempty"`     // Actual end or deadline (zero = not tracked)
	ID             string      `json:"id" yaml:"id"`                                          // Stable identifier, edit target key
	Name           string      `json:"name" yaml:"name"`                                      // Display label
	OriginalName   string      `json:"originalName" yaml:"originalName"`                      // Unabridged label
	Status         string      `json:"status" yaml:"status"`                                  // Free-text status from the source
	StatusClass    StatusClass `json:"statusClass" yaml:"statusClass"`                        // Derived once at normalization
	Responsible    string      `json:"responsible" yaml:"responsible"`                        // Filter dimension
	Project        string      `json:"project" yaml:"project"`                                // Filter dimension
	Sector         string      `json:"sector" yaml:"sector"`                                  // Filter dimension
	Classification string      `json:"classification" yaml:"classification"`                  // Filter dimension
}

// HasRealStart reports whether an actual start date is tracked.
func (r *Record) HasRealStart() bool {
	return !r.RealStart.IsZero()
}

// DurationDays returns the inclusive planned duration in whole days.
func (r *Record) DurationDays() int {
	return DayDifference(r.Start, r.End) + 1
}

// RowTitle returns the hover text for the record's label row.
func (r *Record) RowTitle(mode Mode) string {
	if mode == ModeProjects {
		return r.Name + " (ID: " + r.ID + ")"
	}
	return r.OriginalName + " (Resp: " + r.Responsible + ")"
}
