package domain

// ViewState is the user's current view selection.
// It lives only for the session.
type ViewState struct {
	Filters  Filters
	Mode     Mode
	Zoom     Zoom
	ReadOnly bool
}

// NewViewState returns the initial state: TASKS mode, week zoom, no filters.
func NewViewState() ViewState {
	return ViewState{
		Filters: AllFilters(),
		Mode:    ModeTasks,
		Zoom:    DefaultZoom,
	}
}

// WithMode switches mode. Every filter resets because the value sets differ per mode.
func (s ViewState) WithMode(mode Mode) ViewState {
	if mode == s.Mode {
		return s
	}
	s.Mode = mode
	s.Filters = AllFilters()
	return s
}

// ResetFilters clears every filter dimension.
func (s ViewState) ResetFilters() ViewState {
	s.Filters = AllFilters()
	return s
}
