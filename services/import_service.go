package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rkant062/fitback/models"

	"github.com/xuri/excelize/v2"
)

type ImportService struct{ checklist *ChecklistService }

func NewImportService(checklist *ChecklistService) *ImportService {
	return &ImportService{checklist: checklist}
}

var importDateLayouts = []string{"2006-01-02", "01/02/2006", "2006-01-02 15:04:05", time.RFC3339}

// ImportWorkbook reads the first sheet of an .xlsx export. Expected header
// columns: Day, Date, Calories Burned, Checklist (semicolon-separated task
// names; imported tasks start incomplete at priority 1). One record is
// stored per row via BulkAdd, so duplicate days are rejected, not merged.
func (s *ImportService) ImportWorkbook(userID uint, r io.Reader) ([]models.ActivityRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read workbook: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read sheet %q: %v", ErrInvalidInput, sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet has no data rows", ErrInvalidInput)
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	dateCol, ok := col["date"]
	if !ok {
		return nil, fmt.Errorf("%w: missing Date column", ErrInvalidInput)
	}

	inputs := make([]BulkRecordInput, 0, len(rows)-1)
	for n, row := range rows[1:] {
		date, err := parseImportDate(cell(row, dateCol))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidInput, n+2, err)
		}
		calories := 0
		if i, ok := col["calories burned"]; ok {
			if v := cell(row, i); v != "" {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: row %d: bad calories %q", ErrInvalidInput, n+2, v)
				}
				calories = int(f)
			}
		}
		input := BulkRecordInput{
			Date:           date,
			CaloriesBurned: calories,
		}
		if i, ok := col["day"]; ok {
			input.Day = cell(row, i)
		}
		if i, ok := col["checklist"]; ok {
			for _, task := range strings.Split(cell(row, i), ";") {
				if task = strings.TrimSpace(task); task != "" {
					input.Checklist = append(input.Checklist, TaskSeed{Task: task, Priority: 1})
				}
			}
		}
		inputs = append(inputs, input)
	}

	return s.checklist.BulkAdd(userID, inputs)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseImportDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range importDateLayouts {
		if t, err := time.ParseInLocation(layout, v, appZone()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", v)
}
