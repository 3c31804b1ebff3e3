package domain

import (
	"fmt"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// MissingDatePlaceholder is shown in place of an absent date.
const MissingDatePlaceholder = "--/--/----"

// CalendarDay truncates t to midnight of its UTC calendar day.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dayNumber returns the count of days since the Unix epoch for t's UTC calendar day.
func dayNumber(t time.Time) int64 {
	return CalendarDay(t).Unix() / secondsPerDay
}

// signedDays returns the number of calendar days from a to b (negative if b is earlier).
func signedDays(a, b time.Time) int {
	return int(dayNumber(b) - dayNumber(a))
}

// DayDifference returns the absolute number of whole UTC calendar days between a and b.
// Time of day is ignored: two instants on the same calendar day yield 0.
func DayDifference(a, b time.Time) int {
	n := signedDays(a, b)
	if n < 0 {
		return -n
	}
	return n
}

// orderedRange returns the earlier and the later of two dates.
func orderedRange(a, b time.Time) (time.Time, time.Time) {
	if signedDays(a, b) < 0 {
		return b, a
	}
	return a, b
}

// SpanOf returns the earliest planned start and the latest planned end of records.
// A record whose end precedes its start contributes its dates in calendar order.
func SpanOf(records []*Record) (time.Time, time.Time, error) {
	if len(records) == 0 {
		return time.Time{}, time.Time{}, ErrEmptyCollection
	}
	minStart, maxEnd := orderedRange(records[0].Start, records[0].End)
	for _, r := range records[1:] {
		start, end := orderedRange(r.Start, r.End)
		if signedDays(start, minStart) > 0 {
			minStart = start
		}
		if signedDays(maxEnd, end) > 0 {
			maxEnd = end
		}
	}
	return CalendarDay(minStart), CalendarDay(maxEnd), nil
}

// FormatForDisplay renders t as DD/MM/YYYY using its UTC calendar fields.
func FormatForDisplay(t time.Time) string {
	if t.IsZero() {
		return MissingDatePlaceholder
	}
	y, m, d := t.UTC().Date()
	return fmt.Sprintf("%02d/%02d/%04d", d, int(m), y)
}

// FormatForInput renders t as YYYY-MM-DD, or "" when absent.
func FormatForInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// FormatForUpdate renders t in the layout expected by DataSource.Update.
// The time component is always midnight. A zero t renders as "", which
// asks the source to clear the date.
func FormatForUpdate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return CalendarDay(t).Format("2006-01-02") + " 00:00:00"
}

// ParseInputDate parses a YYYY-MM-DD form value into a UTC calendar date.
func ParseInputDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
