// Package sheets implements domain.DataSource on top of a Google spreadsheet.
//
// The spreadsheet holds one worksheet per collection. Rows are read as
// formatted text, converted to the positional RawRecord layout and written
// back through the Sheets values API with USER_ENTERED semantics.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/gantt/internal/domain"
)

// UnassignedProject is the project name of tasks whose project reference
// matches no row of the projects sheet.
const UnassignedProject = "Tarefas Soltas"

// sheetDateFormat is how dates are written back to the spreadsheet.
const sheetDateFormat = "02/01/2006 15:04:05"

// minTaskCells is the shortest task row that is considered complete.
const minTaskCells = 35

// Column positions (zero-based) on the projects worksheet.
const (
	projSolicitation = 1
	projName         = 3
	projClassif      = 6
	projResponsible  = 7
	projStatus       = 10
	projRealEnd      = 23
	projID           = 24
	projSector       = 26
	projPlannedStart = 28
	projPlannedEnd   = 31
)

// Column positions (zero-based) on the tasks worksheet.
const (
	taskProjectRef  = 0
	taskStart       = 2
	taskName        = 4
	taskClassif     = 7
	taskResponsible = 8
	taskStatus      = 10
	taskRealEnd     = 22
	taskID          = 23
	taskRealStart   = 27
	taskSector      = 30
	taskDeadline    = 33
)

// A1 column letters used when writing back.
const (
	projIDColumn       = "Y"
	projStartColumn    = "BB"
	projEndColumn      = "AF"
	taskIDColumn       = "X"
	taskStartColumn    = "AB"
	taskDeadlineColumn = "AH"
)

// CellUpdate is a single-cell write in A1 notation.
type CellUpdate struct {
	Range string
	Value string
}

// Values is the part of the Sheets values API the source relies on.
type Values interface {
	// Get returns the formatted cell text of the whole worksheet.
	Get(ctx context.Context, spreadsheetID, sheet string) ([][]string, error)
	// BatchUpdate writes cells as if typed by a user.
	BatchUpdate(ctx context.Context, spreadsheetID string, updates []CellUpdate) error
}

// Source implements domain.DataSource over two worksheets.
type Source struct {
	values        Values
	spreadsheetID string
	tasksSheet    string
	projectsSheet string
}

// New creates a Source reading spreadsheetID through values.
func New(values Values, spreadsheetID, tasksSheet, projectsSheet string) *Source {
	return &Source{
		values:        values,
		spreadsheetID: spreadsheetID,
		tasksSheet:    tasksSheet,
		projectsSheet: projectsSheet,
	}
}

// List reads and converts the rows of mode. The header row is skipped.
func (s *Source) List(ctx context.Context, mode domain.Mode) ([]domain.RawRecord, error) {
	projects, err := s.values.Get(ctx, s.spreadsheetID, s.projectsSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.projectsSheet, err)
	}
	if mode == domain.ModeProjects {
		return projectRows(dataRows(projects)), nil
	}

	tasks, err := s.values.Get(ctx, s.spreadsheetID, s.tasksSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.tasksSheet, err)
	}
	return taskRows(dataRows(tasks), projectNames(dataRows(projects))), nil
}

// Update writes the editable date pair of the row whose ID cell equals id.
// Tasks receive the real start and the deadline, projects the planned range.
func (s *Source) Update(ctx context.Context, id string, mode domain.Mode, startDate, endDate string) error {
	start, err := sheetDate(startDate)
	if err != nil {
		return &domain.UpdateFailure{Message: err.Error()}
	}
	end, err := sheetDate(endDate)
	if err != nil {
		return &domain.UpdateFailure{Message: err.Error()}
	}

	sheet, idCol, startCol, endCol := s.tasksSheet, taskIDColumn, taskStartColumn, taskDeadlineColumn
	if mode == domain.ModeProjects {
		sheet, idCol, startCol, endCol = s.projectsSheet, projIDColumn, projStartColumn, projEndColumn
	}

	rows, err := s.values.Get(ctx, s.spreadsheetID, sheet)
	if err != nil {
		return fmt.Errorf("read %s: %w", sheet, err)
	}
	rowNum := findRow(rows, columnIndex(idCol), id)
	if rowNum == 0 {
		return &domain.UpdateFailure{
			Message: fmt.Sprintf("ID %s not found in %s", id, sheet),
			Err:     domain.ErrRecordNotFound,
		}
	}

	updates := []CellUpdate{
		{Range: cellRange(sheet, startCol, rowNum), Value: start},
		{Range: cellRange(sheet, endCol, rowNum), Value: end},
	}
	if err := s.values.BatchUpdate(ctx, s.spreadsheetID, updates); err != nil {
		return fmt.Errorf("write %s: %w", sheet, err)
	}
	return nil
}

// columnIndex converts an A1 column name to a zero-based position.
func columnIndex(letters string) int {
	n := 0
	for _, r := range strings.ToUpper(letters) {
		n = n*26 + int(r-'A'+1)
	}
	return n - 1
}

func dataRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

// findRow returns the 1-based row number of the first row whose cell at pos
// equals id, or 0.
func findRow(rows [][]string, pos int, id string) int {
	id = strings.TrimSpace(id)
	for i, row := range rows {
		if cell(row, pos) == id {
			return i + 1
		}
	}
	return 0
}

// sheetRef quotes a worksheet name for use in A1 notation.
func sheetRef(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func cellRange(sheet, column string, row int) string {
	return fmt.Sprintf("%s!%s%d", sheetRef(sheet), column, row)
}

func cell(row []string, pos int) string {
	if pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

func projectNames(rows [][]string) map[string]string {
	names := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) > projID {
			names[cell(row, projID)] = cell(row, projName)
		}
	}
	return names
}

func projectRows(rows [][]string) []domain.RawRecord {
	out := make([]domain.RawRecord, 0, len(rows))
	for _, row := range rows {
		id := cell(row, projID)
		if id == "" {
			continue
		}
		solicitation := parseSheetDate(cell(row, projSolicitation))
		start := parseSheetDate(cell(row, projPlannedStart))
		if start.IsZero() {
			start = solicitation
		}
		end := parseSheetDate(cell(row, projPlannedEnd))
		if start.IsZero() || end.IsZero() {
			continue
		}
		if end.Before(start) {
			end = start
		}

		name := cell(row, projName)
		out = append(out, record(recordFields{
			id:             id,
			name:           name,
			status:         cell(row, projStatus),
			start:          start,
			end:            end,
			realStart:      solicitation,
			realEnd:        parseSheetDate(cell(row, projRealEnd)),
			responsible:    cell(row, projResponsible),
			project:        name,
			sector:         cell(row, projSector),
			classification: cell(row, projClassif),
		}))
	}
	return out
}

func taskRows(rows [][]string, projects map[string]string) []domain.RawRecord {
	out := make([]domain.RawRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < minTaskCells {
			continue
		}
		id := cell(row, taskID)
		if id == "" {
			continue
		}
		project, ok := projects[cell(row, taskProjectRef)]
		if !ok {
			project = UnassignedProject
		}

		realEnd := parseSheetDate(cell(row, taskRealEnd))
		start := parseSheetDate(cell(row, taskStart))
		end := parseSheetDate(cell(row, taskDeadline))
		if end.IsZero() {
			end = realEnd
		}
		if start.IsZero() || end.IsZero() {
			continue
		}
		if end.Before(start) {
			end = start
		}

		out = append(out, record(recordFields{
			id:             id,
			name:           cell(row, taskName),
			status:         cell(row, taskStatus),
			start:          start,
			end:            end,
			realStart:      parseSheetDate(cell(row, taskRealStart)),
			realEnd:        realEnd,
			responsible:    cell(row, taskResponsible),
			project:        project,
			sector:         cell(row, taskSector),
			classification: cell(row, taskClassif),
		}))
	}
	return out
}

type recordFields struct {
	start, end, realStart, realEnd time.Time

	id, name, status, responsible, project, sector, classification string
}

func record(f recordFields) domain.RawRecord {
	raw := domain.NewRawRecord()
	raw[domain.FieldID] = f.id
	raw[domain.FieldName] = f.name
	raw[domain.FieldStatus] = f.status
	raw.SetDate(domain.FieldStart, f.start)
	raw.SetDate(domain.FieldEnd, f.end)
	raw.SetDate(domain.FieldRealStart, f.realStart)
	raw.SetDate(domain.FieldRealEnd, f.realEnd)
	raw[domain.FieldResponsible] = f.responsible
	raw[domain.FieldProject] = f.project
	raw[domain.FieldColorClass] = string(domain.ClassifyStatus(f.status))
	raw[domain.FieldSector] = f.sector
	raw[domain.FieldClassification] = f.classification
	return raw
}

// sheetLayouts are tried in order. Day-first wins over month-first for
// ambiguous slash dates.
var sheetLayouts = []string{
	"2006-1-2 15:04:05",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"1/2/2006 15:04:05",
	"2/1/2006",
	"2006-1-2",
	"1/2/2006",
}

// parseSheetDate reads a cell date. Unparsable text yields the zero time.
func parseSheetDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range sheetLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return domain.CalendarDay(t)
		}
	}
	if head, _, ok := strings.Cut(s, " "); ok {
		return parseSheetDate(head)
	}
	return time.Time{}
}

// sheetDate converts an update date to the spreadsheet's DD/MM/YYYY form.
// sheetDate converts an update date to the sheet layout. An empty value
// stays empty and blanks the cell.
func sheetDate(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	t, err := domain.ParseUpdateDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(sheetDateFormat), nil
}

var _ domain.DataSource = (*Source)(nil)
