package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestComputeLayout_SingleRecord(t *testing.T) {
	records := []*Record{
		{ID: "1", Name: "Build", Responsible: "Ana", Start: Date(2024, 1, 1), End: Date(2024, 1, 3), StatusClass: StatusPending},
	}

	for _, z := range AllZooms() {
		t.Run(string(z), func(t *testing.T) {
			l, err := ComputeLayout(records, LayoutOptions{Zoom: z})
			if err != nil {
				t.Fatalf("ComputeLayout() error = %v", err)
			}
			bar := l.Bars[0]
			if bar.DurationDays != 3 {
				t.Errorf("DurationDays = %d, want 3", bar.DurationDays)
			}
			if bar.BarWidth != 3*z.PxPerDay() {
				t.Errorf("BarWidth = %d, want %d", bar.BarWidth, 3*z.PxPerDay())
			}
			if bar.BarLeft != 0 {
				t.Errorf("BarLeft = %d, want 0", bar.BarLeft)
			}
			if l.Width != 3*z.PxPerDay() {
				t.Errorf("Width = %d", l.Width)
			}
			if bar.Label != "Ana Build" {
				t.Errorf("Label = %q", bar.Label)
			}
		})
	}
}

func TestComputeLayout_Span(t *testing.T) {
	records := []*Record{
		{ID: "1", Start: Date(2024, 1, 1), End: Date(2024, 1, 5)},
		{ID: "2", Start: Date(2024, 1, 10), End: Date(2024, 1, 12)},
	}

	l, err := ComputeLayout(records, LayoutOptions{Zoom: ZoomWeek})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if !l.Start.Equal(Date(2024, 1, 1)) || !l.End.Equal(Date(2024, 1, 12)) {
		t.Errorf("span = %v..%v", l.Start, l.End)
	}
	if l.TotalDays != 12 {
		t.Errorf("TotalDays = %d, want 12", l.TotalDays)
	}
	if l.Width != 120 {
		t.Errorf("Width = %d, want 120", l.Width)
	}
	if l.Height != 2*RowHeight {
		t.Errorf("Height = %d", l.Height)
	}

	second := l.Bars[1]
	if second.BarLeft != 90 || second.BarWidth != 30 {
		t.Errorf("second bar left/width = %d/%d, want 90/30", second.BarLeft, second.BarWidth)
	}
	if second.RowTop != RowHeight || second.BarTop != RowHeight+BarInset {
		t.Errorf("second bar row/bar top = %d/%d", second.RowTop, second.BarTop)
	}
}

func TestComputeLayout_BarsStayInsideTimeline(t *testing.T) {
	records := []*Record{
		{ID: "1", Start: Date(2024, 2, 20), End: Date(2024, 3, 2)},
		{ID: "2", Start: Date(2024, 1, 30), End: Date(2024, 2, 1)},
		{ID: "3", Start: Date(2024, 4, 1), End: Date(2024, 3, 28)},
	}

	l, err := ComputeLayout(records, LayoutOptions{Zoom: ZoomDay})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	for _, b := range l.Bars {
		if b.BarLeft < 0 {
			t.Errorf("bar %s BarLeft = %d", b.ID, b.BarLeft)
		}
		if b.BarLeft+b.BarWidth > l.Width {
			t.Errorf("bar %s ends at %d beyond width %d", b.ID, b.BarLeft+b.BarWidth, l.Width)
		}
	}
}

func TestComputeLayout_Idempotent(t *testing.T) {
	records := []*Record{
		{ID: "1", Start: Date(2024, 1, 1), End: Date(2024, 2, 5), Status: "pendente", StatusClass: StatusPending, RealStart: Date(2024, 1, 8)},
		{ID: "2", Start: Date(2024, 1, 10), End: Date(2024, 1, 12)},
	}
	opts := LayoutOptions{Zoom: ZoomDayCompact, Today: Date(2024, 1, 20), Editable: true}

	a, err := ComputeLayout(records, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeLayout(records, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("ComputeLayout() not deterministic")
	}
}

func TestComputeLayout_Empty(t *testing.T) {
	_, err := ComputeLayout(nil, LayoutOptions{})
	if !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("error = %v, want ErrEmptyCollection", err)
	}
}

func TestComputeLayout_Today(t *testing.T) {
	records := []*Record{{ID: "1", Start: Date(2024, 1, 1), End: Date(2024, 1, 12)}}

	l, _ := ComputeLayout(records, LayoutOptions{Zoom: ZoomDay, Today: Date(2024, 1, 5)})
	if !l.HasToday || l.TodayLeft != 4*40 {
		t.Errorf("today = %v/%d, want true/160", l.HasToday, l.TodayLeft)
	}

	l, _ = ComputeLayout(records, LayoutOptions{Zoom: ZoomDay, Today: Date(2024, 2, 1)})
	if l.HasToday {
		t.Error("today outside span should not be marked")
	}

	l, _ = ComputeLayout(records, LayoutOptions{Zoom: ZoomDay})
	if l.HasToday {
		t.Error("zero today should not be marked")
	}
}

func TestComputeLayout_Editable(t *testing.T) {
	records := []*Record{{ID: "1", Start: Date(2024, 1, 1), End: Date(2024, 1, 1)}}

	l, _ := ComputeLayout(records, LayoutOptions{Editable: true})
	if !l.Bars[0].Editable {
		t.Error("bar should be editable")
	}
	l, _ = ComputeLayout(records, LayoutOptions{})
	if l.Bars[0].Editable {
		t.Error("bar should be read-only")
	}
}

func TestComputeLayout_Ticks(t *testing.T) {
	records := []*Record{{ID: "1", Start: Date(2024, 1, 20), End: Date(2024, 3, 5)}}

	l, _ := ComputeLayout(records, LayoutOptions{Zoom: ZoomWeek})
	var labels []string
	for _, tk := range l.MonthTicks {
		labels = append(labels, tk.Label)
	}
	if !reflect.DeepEqual(labels, []string{"01/2024", "02/2024", "03/2024"}) {
		t.Errorf("month labels = %v", labels)
	}
	if l.MonthTicks[1].Left != 12*10 {
		t.Errorf("February tick left = %d, want 120", l.MonthTicks[1].Left)
	}
	// 2024-01-22 is the first Monday on or after the start.
	if len(l.DetailTicks) == 0 || l.DetailTicks[0].Label != "22/01" || l.DetailTicks[0].Left != 20 {
		t.Errorf("first week tick = %+v", l.DetailTicks)
	}
	for _, tk := range l.DetailTicks {
		if tk.Date.Weekday() != time.Monday {
			t.Errorf("week tick on %v", tk.Date.Weekday())
		}
	}

	l, _ = ComputeLayout(records, LayoutOptions{Zoom: ZoomDay})
	if len(l.DetailTicks) != l.TotalDays {
		t.Errorf("day ticks = %d, want %d", len(l.DetailTicks), l.TotalDays)
	}

	l, _ = ComputeLayout(records, LayoutOptions{Zoom: ZoomMonth})
	if len(l.DetailTicks) != 0 {
		t.Errorf("month zoom detail ticks = %d", len(l.DetailTicks))
	}
}

func TestGradientFraction(t *testing.T) {
	base := Record{Start: Date(2024, 1, 1), End: Date(2024, 1, 10), StatusClass: StatusPending}

	tests := []struct {
		name   string
		record Record
		want   float64
	}{
		{"no real start", base, 0},
		{"on time", withRealStart(base, Date(2024, 1, 1)), 0},
		{"five days early", withRealStart(base, Date(2023, 12, 27)), 50},
		{"early beyond duration", withRealStart(base, Date(2023, 12, 20)), 100},
		{"three days late", withRealStart(base, Date(2024, 1, 4)), 30},
		{"beyond planned end", withRealStart(base, Date(2024, 3, 1)), 100},
		{"closed status", withClass(withRealStart(base, Date(2024, 1, 4)), StatusFinished), 0},
		{"in progress", withClass(withRealStart(base, Date(2024, 1, 6)), StatusInProgress), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.record
			got := GradientFraction(&r)
			if got != tt.want {
				t.Errorf("GradientFraction() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("GradientFraction() = %v out of bounds", got)
			}
		})
	}
}

func withRealStart(r Record, d time.Time) Record {
	r.RealStart = d
	return r
}

func withClass(r Record, c StatusClass) Record {
	r.StatusClass = c
	return r
}

func TestTooltip(t *testing.T) {
	r := &Record{Status: "Pendente", OriginalName: "Write docs", Start: Date(2024, 1, 1), End: Date(2024, 1, 3)}
	want := "[Pendente] Write docs\nPlanned: 01/01/2024 to 03/01/2024"
	if got := Tooltip(r); got != want {
		t.Errorf("Tooltip() = %q, want %q", got, want)
	}

	r.RealStart = Date(2024, 1, 2)
	got := Tooltip(r)
	if !strings.Contains(got, "Real start: 02/01/2024") {
		t.Errorf("Tooltip() missing real start: %q", got)
	}
	if !strings.Contains(got, "Real end/deadline: "+MissingDatePlaceholder) {
		t.Errorf("Tooltip() missing deadline placeholder: %q", got)
	}
}

func TestProjectDuration(t *testing.T) {
	if got := ProjectDuration(nil); got != 0 {
		t.Errorf("ProjectDuration(nil) = %d", got)
	}
	records := []*Record{
		{Start: Date(2024, 1, 1), End: Date(2024, 1, 5)},
		{Start: Date(2024, 1, 10), End: Date(2024, 1, 12)},
	}
	if got := ProjectDuration(records); got != 12 {
		t.Errorf("ProjectDuration() = %d, want 12", got)
	}
}
