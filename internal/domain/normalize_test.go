package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func rawTask(id, name, status string, start, end time.Time) RawRecord {
	raw := NewRawRecord()
	raw[FieldID] = id
	raw[FieldName] = name
	raw[FieldStatus] = status
	raw.SetDate(FieldStart, start)
	raw.SetDate(FieldEnd, end)
	raw[FieldResponsible] = "Ana"
	raw[FieldProject] = "Migration"
	raw[FieldColorClass] = "status-default"
	raw[FieldSector] = "TI"
	raw[FieldClassification] = "A"
	return raw
}

func TestNormalizeRecord(t *testing.T) {
	raw := rawTask("T-1", "Deploy", "  em-andamento  ", Date(2024, 1, 1), Date(2024, 1, 3))
	raw.SetDate(FieldRealStart, Date(2024, 1, 2))

	rec, err := NormalizeRecord(0, raw)
	if err != nil {
		t.Fatalf("NormalizeRecord() error = %v", err)
	}
	if rec.ID != "T-1" || rec.Name != "Deploy" || rec.OriginalName != "Deploy" {
		t.Errorf("identity = %q/%q/%q", rec.ID, rec.Name, rec.OriginalName)
	}
	if rec.StatusClass != StatusInProgress {
		t.Errorf("StatusClass = %q, want %q", rec.StatusClass, StatusInProgress)
	}
	if !rec.Start.Equal(Date(2024, 1, 1)) || !rec.End.Equal(Date(2024, 1, 3)) {
		t.Errorf("planned = %v..%v", rec.Start, rec.End)
	}
	if !rec.RealStart.Equal(Date(2024, 1, 2)) {
		t.Errorf("RealStart = %v", rec.RealStart)
	}
	if !rec.RealEnd.IsZero() {
		t.Errorf("RealEnd = %v, want zero", rec.RealEnd)
	}
	if rec.Responsible != "Ana" || rec.Project != "Migration" || rec.Sector != "TI" || rec.Classification != "A" {
		t.Errorf("dimensions = %+v", rec)
	}
	if rec.DurationDays() != 3 {
		t.Errorf("DurationDays() = %d, want 3", rec.DurationDays())
	}
}

func TestNormalizeRecord_ZeroBasedMonth(t *testing.T) {
	raw := rawTask("1", "n", "pendente", Date(2024, 1, 1), Date(2024, 1, 1))
	raw[FieldEnd], raw[FieldEnd+1], raw[FieldEnd+2] = 2024, 11, 31

	rec, err := NormalizeRecord(0, raw)
	if err != nil {
		t.Fatalf("NormalizeRecord() error = %v", err)
	}
	if !rec.End.Equal(Date(2024, 12, 31)) {
		t.Errorf("End = %v, want 2024-12-31", rec.End)
	}
}

func TestNormalizeRecord_JSONNumbers(t *testing.T) {
	var raw RawRecord
	payload := `["7","Name","Finalizado",2024,1,29,2024.0,2,1,null,null,null,null,null,null,"Bia","P","status-finalizado"]`
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec, err := NormalizeRecord(0, raw)
	if err != nil {
		t.Fatalf("NormalizeRecord() error = %v", err)
	}
	if !rec.Start.Equal(Date(2024, 2, 29)) {
		t.Errorf("Start = %v", rec.Start)
	}
	if !rec.End.Equal(Date(2024, 3, 1)) {
		t.Errorf("End = %v", rec.End)
	}
	if rec.Sector != "" || rec.Classification != "" {
		t.Errorf("missing trailing fields should read empty, got %q/%q", rec.Sector, rec.Classification)
	}
}

func TestNormalizeRecord_FloatPositions(t *testing.T) {
	raw := RawRecord{float64(42), "Name", "", float64(2024), float64(0), float64(5), float64(2024), float64(0), float64(6)}

	rec, err := NormalizeRecord(0, raw)
	if err != nil {
		t.Fatalf("NormalizeRecord() error = %v", err)
	}
	if rec.ID != "42" {
		t.Errorf("ID = %q, want 42", rec.ID)
	}
	if rec.StatusClass != StatusDefault {
		t.Errorf("StatusClass = %q", rec.StatusClass)
	}
}

func TestNormalizeRecord_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(RawRecord) RawRecord
		field string
	}{
		{"missing id", func(r RawRecord) RawRecord { r[FieldID] = nil; return r }, "id"},
		{"blank id", func(r RawRecord) RawRecord { r[FieldID] = "  "; return r }, "id"},
		{"missing name", func(r RawRecord) RawRecord { r[FieldName] = nil; return r }, "name"},
		{"missing status", func(r RawRecord) RawRecord { r[FieldStatus] = nil; return r }, "status"},
		{"missing start", func(r RawRecord) RawRecord { r.SetDate(FieldStart, time.Time{}); return r }, "start date"},
		{"missing end", func(r RawRecord) RawRecord { r.SetDate(FieldEnd, time.Time{}); return r }, "end date"},
		{"month out of range", func(r RawRecord) RawRecord { r[FieldStart+1] = 12; return r }, "start date"},
		{"incomplete date", func(r RawRecord) RawRecord { r[FieldEnd+2] = nil; return r }, "end date"},
		{"fractional day", func(r RawRecord) RawRecord { r[FieldStart+2] = 1.5; return r }, "start date"},
		{"bad real start", func(r RawRecord) RawRecord { r[FieldRealStart] = 2024; r[FieldRealStart+1] = "x"; return r }, "real start date"},
		{"truncated row", func(r RawRecord) RawRecord { return r[:6] }, "end date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.mut(rawTask("1", "n", "pendente", Date(2024, 1, 1), Date(2024, 1, 2)))
			_, err := NormalizeRecord(3, raw)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("error = %v, want ErrMalformedRecord", err)
			}
			var mErr *MalformedRecordError
			if !errors.As(err, &mErr) {
				t.Fatalf("error type = %T", err)
			}
			if mErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", mErr.Field, tt.field)
			}
			if mErr.Index != 3 {
				t.Errorf("Index = %d, want 3", mErr.Index)
			}
		})
	}
}

func TestNormalizeRecords_FailsWholeBatch(t *testing.T) {
	good := rawTask("1", "a", "pendente", Date(2024, 1, 1), Date(2024, 1, 2))
	bad := rawTask("2", "b", "pendente", Date(2024, 1, 1), Date(2024, 1, 2))
	bad[FieldName] = nil

	records, err := NormalizeRecords([]RawRecord{good, bad})
	if err == nil {
		t.Fatal("expected error")
	}
	if records != nil {
		t.Errorf("records = %v, want nil", records)
	}
}

func TestNormalizeRecords_Empty(t *testing.T) {
	records, err := NormalizeRecords(nil)
	if err != nil {
		t.Fatalf("NormalizeRecords(nil) error = %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records = %v, want empty non-nil", records)
	}
}

func TestRawRecord_SetDate(t *testing.T) {
	raw := NewRawRecord()
	raw.SetDate(FieldRealEnd, Date(2025, 1, 15))
	if raw[FieldRealEnd] != 2025 || raw[FieldRealEnd+1] != 0 || raw[FieldRealEnd+2] != 15 {
		t.Errorf("SetDate() = %v", raw[FieldRealEnd:FieldRealEnd+3])
	}
	raw.SetDate(FieldRealEnd, time.Time{})
	if raw[FieldRealEnd] != nil {
		t.Errorf("SetDate(zero) left %v", raw[FieldRealEnd])
	}
}
