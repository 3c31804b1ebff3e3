package domain

import "time"

// EditTarget describes which date pair an edit changes and how the form
// presents it. Tasks edit the real start and the deadline; projects edit
// the planned range.
type EditTarget struct {
	Start      time.Time
	End        time.Time
	ID         string
	Title      string
	StartLabel string
	EndLabel   string
	Mode       Mode
}

// NewEditTarget returns the edit target for r in mode, prefilled from the record.
func NewEditTarget(r *Record, mode Mode) EditTarget {
	if mode == ModeProjects {
		return EditTarget{
			ID:         r.ID,
			Mode:       mode,
			Title:      "Edit project dates",
			StartLabel: "Planned start",
			EndLabel:   "Planned end",
			Start:      r.Start,
			End:        r.End,
		}
	}
	return EditTarget{
		ID:         r.ID,
		Mode:       ModeTasks,
		Title:      "Edit task dates",
		StartLabel: "Real start",
		EndLabel:   "Deadline",
		Start:      r.RealStart,
		End:        r.End,
	}
}
