package domain

import (
	"fmt"
	"strings"
	"time"
)

// Fixed vertical metrics of the timeline, in pixels.
const (
	RowHeight = 50
	BarInset  = 15
)

// TickKind identifies a header tick granularity.
type TickKind int

const (
	TickMonth TickKind = iota
	TickWeek
	TickDay
)

// Tick is a labelled mark on the timeline header.
type Tick struct {
	Date  time.Time
	Label string
	Left  int
	Kind  TickKind
}

// Bar is the render instruction for one visible record.
// Fields are ordered to minimize memory padding.
type Bar struct {
	Start            time.Time   `json:"start"`
	End              time.Time   `json:"end"`
	ID               string      `json:"id"`
	Label            string      `json:"label"`
	TooltipText      string      `json:"tooltipText"`
	StatusClass      StatusClass `json:"statusClass"`
	GradientFraction float64     `json:"gradientFraction"`
	RowTop           int         `json:"rowTop"`
	BarTop           int         `json:"barTop"`
	BarLeft          int         `json:"barLeft"`
	BarWidth         int         `json:"barWidth"`
	DurationDays     int         `json:"durationDays"`
	Editable         bool        `json:"editable"`
}

// Layout is the complete geometry of a timeline for one visible subset.
type Layout struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Today       time.Time `json:"today,omitzero"`
	Zoom        Zoom      `json:"zoom"`
	Bars        []Bar     `json:"bars"`
	MonthTicks  []Tick    `json:"monthTicks"`
	DetailTicks []Tick    `json:"detailTicks"`
	PxPerDay    int       `json:"pxPerDay"`
	TotalDays   int       `json:"totalDays"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	TodayLeft   int       `json:"todayLeft"`
	HasToday    bool      `json:"hasToday"`
}

// LayoutOptions are the non-record inputs of ComputeLayout.
type LayoutOptions struct {
	Today    time.Time // Zero disables the today marker
	Zoom     Zoom
	Editable bool
}

// ComputeLayout positions records on a timeline. records must be non-empty;
// callers render the empty state themselves. The result depends only on the
// inputs, so repeated calls yield identical geometry.
func ComputeLayout(records []*Record, opts LayoutOptions) (*Layout, error) {
	start, end, err := SpanOf(records)
	if err != nil {
		return nil, err
	}
	zoom := ParseZoom(string(opts.Zoom))
	px := zoom.PxPerDay()
	totalDays := DayDifference(start, end) + 1

	l := &Layout{
		Start:     start,
		End:       end,
		Zoom:      zoom,
		PxPerDay:  px,
		TotalDays: totalDays,
		Width:     totalDays * px,
		Height:    len(records) * RowHeight,
		Bars:      make([]Bar, 0, len(records)),
	}

	for i, r := range records {
		l.Bars = append(l.Bars, layoutBar(i, r, start, px, opts.Editable))
	}

	l.MonthTicks = monthTicks(start, end, px)
	l.DetailTicks = detailTicks(start, end, px, zoom)

	if !opts.Today.IsZero() {
		today := CalendarDay(opts.Today)
		if signedDays(start, today) >= 0 && signedDays(today, end) >= 0 {
			l.Today = today
			l.HasToday = true
			l.TodayLeft = signedDays(start, today) * px
		}
	}
	return l, nil
}

func layoutBar(index int, r *Record, timelineStart time.Time, px int, editable bool) Bar {
	first, _ := orderedRange(r.Start, r.End)
	duration := r.DurationDays()
	rowTop := index * RowHeight
	return Bar{
		ID:               r.ID,
		Label:            strings.TrimSpace(r.Responsible + " " + r.Name),
		TooltipText:      Tooltip(r),
		StatusClass:      r.StatusClass,
		GradientFraction: GradientFraction(r),
		RowTop:           rowTop,
		BarTop:           rowTop + BarInset,
		BarLeft:          DayDifference(timelineStart, first) * px,
		BarWidth:         duration * px,
		DurationDays:     duration,
		Start:            r.Start,
		End:              r.End,
		Editable:         editable && r.ID != "",
	}
}

// GradientFraction returns, in percent of the planned bar, how far the real
// start lies from the planned start in either direction. Only open records
// with a real start have one. The result is always within [0, 100].
func GradientFraction(r *Record) float64 {
	if !r.StatusClass.IsOpen() || !r.HasRealStart() {
		return 0
	}
	shift := DayDifference(r.Start, r.RealStart)
	if shift == 0 {
		return 0
	}
	frac := float64(shift) / float64(r.DurationDays())
	if frac > 1 {
		frac = 1
	}
	return frac * 100
}

// Tooltip composes the hover text of a bar.
func Tooltip(r *Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", r.Status, r.OriginalName)
	fmt.Fprintf(&b, "Planned: %s to %s", FormatForDisplay(r.Start), FormatForDisplay(r.End))
	if r.HasRealStart() {
		fmt.Fprintf(&b, "\nReal start: %s", FormatForDisplay(r.RealStart))
		fmt.Fprintf(&b, "\nReal end/deadline: %s", FormatForDisplay(r.RealEnd))
	}
	return b.String()
}

// monthTicks marks the span start and the first day of every following month.
func monthTicks(start, end time.Time, px int) []Tick {
	ticks := []Tick{{Date: start, Label: start.Format("01/2006"), Left: 0, Kind: TickMonth}}
	next := Date(start.Year(), start.Month()+1, 1)
	for signedDays(next, end) >= 0 {
		ticks = append(ticks, Tick{
			Date:  next,
			Label: next.Format("01/2006"),
			Left:  signedDays(start, next) * px,
			Kind:  TickMonth,
		})
		next = Date(next.Year(), next.Month()+1, 1)
	}
	return ticks
}

// detailTicks returns day ticks for day zooms and Monday ticks for the week zoom.
func detailTicks(start, end time.Time, px int, zoom Zoom) []Tick {
	var ticks []Tick
	switch zoom {
	case ZoomDay, ZoomDayCompact:
		for d := start; signedDays(d, end) >= 0; d = d.AddDate(0, 0, 1) {
			ticks = append(ticks, Tick{Date: d, Label: d.Format("02"), Left: signedDays(start, d) * px, Kind: TickDay})
		}
	case ZoomWeek:
		offset := (int(time.Monday) - int(start.Weekday()) + 7) % 7
		for d := start.AddDate(0, 0, offset); signedDays(d, end) >= 0; d = d.AddDate(0, 0, 7) {
			ticks = append(ticks, Tick{Date: d, Label: d.Format("02/01"), Left: signedDays(start, d) * px, Kind: TickWeek})
		}
	case ZoomMonth:
		// The month row already carries every mark at this density.
	}
	return ticks
}

// ProjectDuration returns the span in days covered by records, or 0 when empty.
func ProjectDuration(records []*Record) int {
	start, end, err := SpanOf(records)
	if err != nil {
		return 0
	}
	return DayDifference(start, end) + 1
}
