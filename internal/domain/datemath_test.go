package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDayDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", Date(2024, 1, 1), Date(2024, 1, 1), 0},
		{"forward", Date(2024, 1, 1), Date(2024, 1, 3), 2},
		{"backward", Date(2024, 1, 3), Date(2024, 1, 1), 2},
		{"leap day", Date(2024, 2, 28), Date(2024, 3, 1), 2},
		{"year boundary", Date(2023, 12, 31), Date(2024, 1, 1), 1},
		{"time of day ignored", time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC), 1},
		{"far apart", Date(1900, 1, 1), Date(2400, 1, 1), 182621},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayDifference(tt.a, tt.b); got != tt.want {
				t.Errorf("DayDifference() = %d, want %d", got, tt.want)
			}
			if got := DayDifference(tt.b, tt.a); got != tt.want {
				t.Errorf("DayDifference() reversed = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpanOf(t *testing.T) {
	records := []*Record{
		{Start: Date(2024, 1, 10), End: Date(2024, 1, 12)},
		{Start: Date(2024, 1, 1), End: Date(2024, 1, 5)},
	}

	start, end, err := SpanOf(records)
	if err != nil {
		t.Fatalf("SpanOf() error = %v", err)
	}
	if !start.Equal(Date(2024, 1, 1)) {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if !end.Equal(Date(2024, 1, 12)) {
		t.Errorf("end = %v, want 2024-01-12", end)
	}
	if days := DayDifference(start, end) + 1; days != 12 {
		t.Errorf("span days = %d, want 12", days)
	}
}

func TestSpanOf_EndBeforeStart(t *testing.T) {
	records := []*Record{
		{Start: Date(2024, 3, 10), End: Date(2024, 3, 2)},
	}

	start, end, err := SpanOf(records)
	if err != nil {
		t.Fatalf("SpanOf() error = %v", err)
	}
	if !start.Equal(Date(2024, 3, 2)) || !end.Equal(Date(2024, 3, 10)) {
		t.Errorf("SpanOf() = %v..%v, want 2024-03-02..2024-03-10", start, end)
	}
}

func TestSpanOf_Empty(t *testing.T) {
	_, _, err := SpanOf(nil)
	if !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("SpanOf(nil) error = %v, want ErrEmptyCollection", err)
	}
}

func TestFormatForDisplay(t *testing.T) {
	if got := FormatForDisplay(Date(2024, 3, 7)); got != "07/03/2024" {
		t.Errorf("FormatForDisplay() = %q, want %q", got, "07/03/2024")
	}
	if got := FormatForDisplay(time.Time{}); got != MissingDatePlaceholder {
		t.Errorf("FormatForDisplay(zero) = %q, want %q", got, MissingDatePlaceholder)
	}
}

func TestFormatForInput(t *testing.T) {
	if got := FormatForInput(Date(2024, 12, 1)); got != "2024-12-01" {
		t.Errorf("FormatForInput() = %q", got)
	}
	if got := FormatForInput(time.Time{}); got != "" {
		t.Errorf("FormatForInput(zero) = %q, want empty", got)
	}
}

func TestFormatForUpdate(t *testing.T) {
	in := time.Date(2024, 5, 6, 17, 30, 0, 0, time.UTC)
	if got := FormatForUpdate(in); got != "2024-05-06 00:00:00" {
		t.Errorf("FormatForUpdate() = %q", got)
	}
	if got := FormatForUpdate(time.Time{}); got != "" {
		t.Errorf("FormatForUpdate(zero) = %q, want empty", got)
	}
}

func TestParseInputDate(t *testing.T) {
	got, err := ParseInputDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("ParseInputDate() error = %v", err)
	}
	if !got.Equal(Date(2024, 2, 29)) {
		t.Errorf("ParseInputDate() = %v", got)
	}

	for _, bad := range []string{"", "29/02/2024", "2023-02-29", "tomorrow"} {
		if _, err := ParseInputDate(bad); err == nil {
			t.Errorf("ParseInputDate(%q) expected error", bad)
		}
	}
}
