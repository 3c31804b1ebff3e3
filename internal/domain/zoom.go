package domain

import "strings"

// Zoom is a named timeline granularity mapping to a fixed pixel width per day.
type Zoom string

const (
	ZoomDay        Zoom = "day"
	ZoomDayCompact Zoom = "day_compact"
	ZoomWeek       Zoom = "week"
	ZoomMonth      Zoom = "month"

	// DefaultZoom is used for unknown selector values.
	DefaultZoom = ZoomWeek
)

var zoomPixels = map[Zoom]int{
	ZoomDay:        40,
	ZoomDayCompact: 20,
	ZoomWeek:       10,
	ZoomMonth:      5,
}

// zoomOrder is the cycling order, densest first.
var zoomOrder = []Zoom{ZoomDay, ZoomDayCompact, ZoomWeek, ZoomMonth}

// AllZooms returns the known zoom levels, densest first.
func AllZooms() []Zoom {
	return append([]Zoom(nil), zoomOrder...)
}

// ParseZoom parses a selector value. Unknown values fall back to DefaultZoom.
func ParseZoom(s string) Zoom {
	z := Zoom(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := zoomPixels[z]; ok {
		return z
	}
	return DefaultZoom
}

// PxPerDay returns the pixel width of one day at this zoom.
func (z Zoom) PxPerDay() int {
	if px, ok := zoomPixels[z]; ok {
		return px
	}
	return zoomPixels[DefaultZoom]
}

// Next returns the following zoom level, wrapping around.
func (z Zoom) Next() Zoom {
	for i, o := range zoomOrder {
		if o == z {
			return zoomOrder[(i+1)%len(zoomOrder)]
		}
	}
	return DefaultZoom
}

// Display returns a human-readable name.
func (z Zoom) Display() string {
	switch z {
	case ZoomDay:
		return "Day"
	case ZoomDayCompact:
		return "Day (compact)"
	case ZoomMonth:
		return "Month"
	default:
		return "Week"
	}
}
