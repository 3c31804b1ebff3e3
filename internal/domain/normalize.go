package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRecord is a positional row as delivered by a DataSource.
type RawRecord []any

// Positions of fields inside a RawRecord.
const (
	FieldID             = 0
	FieldName           = 1
	FieldStatus         = 2
	FieldStart          = 3  // year, zero-based month, day
	FieldEnd            = 6  // year, zero-based month, day
	FieldRealStart      = 9  // nullable triple
	FieldRealEnd        = 12 // nullable triple
	FieldResponsible    = 15
	FieldProject        = 16
	FieldColorClass     = 17
	FieldSector         = 30
	FieldClassification = 31

	// RawRecordLen is the number of positions a data source emits.
	RawRecordLen = 32
)

// NewRawRecord returns a RawRecord of RawRecordLen nil positions.
func NewRawRecord() RawRecord {
	return make(RawRecord, RawRecordLen)
}

// SetDate writes a calendar date into the triple starting at pos.
// A zero t writes nulls.
func (r RawRecord) SetDate(pos int, t time.Time) {
	if t.IsZero() {
		r[pos], r[pos+1], r[pos+2] = nil, nil, nil
		return
	}
	y, m, d := t.UTC().Date()
	r[pos], r[pos+1], r[pos+2] = y, int(m)-1, d
}

// ID returns the identifier position as text, or "" when absent.
func (r RawRecord) ID() string {
	id, _ := r.text(FieldID)
	return id
}

// ParseUpdateDate parses a date in the form passed to DataSource.Update.
// A bare YYYY-MM-DD is accepted as well.
func ParseUpdateDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return CalendarDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// NormalizeRecords converts raw rows into records. A single malformed row
// fails the whole batch.
func NormalizeRecords(raws []RawRecord) ([]*Record, error) {
	records := make([]*Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := NormalizeRecord(i, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// NormalizeRecord converts one raw row. index is only used for error reporting.
func NormalizeRecord(index int, raw RawRecord) (*Record, error) {
	malformed := func(field, reason string) error {
		return &MalformedRecordError{Index: index, Field: field, Reason: reason}
	}

	id, ok := raw.text(FieldID)
	if !ok || strings.TrimSpace(id) == "" {
		return nil, malformed("id", "is missing")
	}
	name, ok := raw.text(FieldName)
	if !ok {
		return nil, malformed("name", "is missing")
	}
	status, ok := raw.text(FieldStatus)
	if !ok {
		return nil, malformed("status", "is missing")
	}

	start, present, err := raw.date(FieldStart)
	if err != nil {
		return nil, malformed("start date", err.Error())
	}
	if !present {
		return nil, malformed("start date", "is missing")
	}
	end, present, err := raw.date(FieldEnd)
	if err != nil {
		return nil, malformed("end date", err.Error())
	}
	if !present {
		return nil, malformed("end date", "is missing")
	}

	realStart, _, err := raw.date(FieldRealStart)
	if err != nil {
		return nil, malformed("real start date", err.Error())
	}
	realEnd, _, err := raw.date(FieldRealEnd)
	if err != nil {
		return nil, malformed("real end date", err.Error())
	}

	responsible, _ := raw.text(FieldResponsible)
	project, _ := raw.text(FieldProject)
	sector, _ := raw.text(FieldSector)
	classification, _ := raw.text(FieldClassification)

	return &Record{
		ID:             id,
		Name:           name,
		OriginalName:   name,
		Status:         status,
		StatusClass:    ClassifyStatus(status),
		Start:          start,
		End:            end,
		RealStart:      realStart,
		RealEnd:        realEnd,
		Responsible:    responsible,
		Project:        project,
		Sector:         sector,
		Classification: classification,
	}, nil
}

// text returns the string at pos. ok is false when the position is absent or null.
func (r RawRecord) text(pos int) (string, bool) {
	if pos >= len(r) || r[pos] == nil {
		return "", false
	}
	switch v := r[pos].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return fmt.Sprint(v), true
	}
}

// number returns the integer at pos. present is false when the position is absent or null.
func (r RawRecord) number(pos int) (n int, present bool, err error) {
	if pos >= len(r) || r[pos] == nil {
		return 0, false, nil
	}
	switch v := r[pos].(type) {
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, true, fmt.Errorf("non-integer value %v", v)
		}
		return int(v), true, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true, nil
		}
		f, err := v.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, true, fmt.Errorf("non-integer value %q", v.String())
		}
		return int(f), true, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, true, fmt.Errorf("non-integer value %q", v)
		}
		return i, true, nil
	default:
		return 0, true, fmt.Errorf("unexpected type %T", v)
	}
}

// date reads a (year, zero-based month, day) triple starting at pos.
// A null year means the date is absent.
func (r RawRecord) date(pos int) (time.Time, bool, error) {
	year, present, err := r.number(pos)
	if err != nil {
		return time.Time{}, true, err
	}
	if !present {
		return time.Time{}, false, nil
	}
	month, mPresent, err := r.number(pos + 1)
	if err != nil {
		return time.Time{}, true, err
	}
	day, dPresent, err := r.number(pos + 2)
	if err != nil {
		return time.Time{}, true, err
	}
	if !mPresent || !dPresent {
		return time.Time{}, true, errors.New("incomplete date")
	}
	if month < 0 || month > 11 || day < 1 || day > 31 {
		return time.Time{}, true, fmt.Errorf("out of range %d-%d-%d", year, month+1, day)
	}
	return Date(year, time.Month(month+1), day), true, nil
}
