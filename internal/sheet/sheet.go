// Package sheet reads and writes roster spreadsheets (xlsx).
//
// Import accepts either English or Arabic column headers; export always
// writes the Arabic layout with a right-to-left sheet.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"github.com/dmitrijs2005/roster/internal/timex"
	"github.com/xuri/excelize/v2"
)

const (
	ExportSheetName = "الطلاب"
	ExportFileName  = "سجل_الطلاب.xlsx"
)

var (
	ErrNothingToExport = errors.New("nothing to export")
	ErrNoSheet         = errors.New("workbook has no sheets")
)

// column pairs the English and Arabic header of one field.
type column struct {
	english string
	arabic  string
}

var (
	colFirstName  = column{"firstName", "الاسم الأول"}
	colLastName   = column{"lastName", "اللقب"}
	colRegNumber  = column{"regNumber", "رقم القيد"}
	colPageNumber = column{"pageNumber", "رقم الصفحة"}
	colNotes      = column{"notes", "الملاحظات"}

	headerCreatedAt = "تاريخ الإضافة"
)

// Read parses the first sheet of an xlsx workbook. The first row is the
// header; each following non-blank row becomes one RecordInput. For every
// field the English column wins when both are present and non-empty.
// Values are returned as found, without validation.
func Read(r io.Reader) ([]models.RecordInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if _, seen := index[h]; !seen && h != "" {
			index[h] = i
		}
	}

	value := func(row []string, c column) string {
		for _, name := range []string{c.english, c.arabic} {
			i, ok := index[name]
			if !ok || i >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[i]); v != "" {
				return v
			}
		}
		return ""
	}

	var result []models.RecordInput
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		result = append(result, models.RecordInput{
			FirstName:  value(row, colFirstName),
			LastName:   value(row, colLastName),
			RegNumber:  value(row, colRegNumber),
			PageNumber: value(row, colPageNumber),
			Notes:      value(row, colNotes),
		})
	}
	return result, nil
}

// Write renders records as a single-sheet workbook in the order given.
// Creation dates are formatted in loc.
func Write(w io.Writer, records []models.Record, loc *time.Location) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	rtl := true
	if err := f.SetSheetView(ExportSheetName, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return fmt.Errorf("sheet view: %w", err)
	}

	header := []any{
		colFirstName.arabic, colLastName.arabic, colRegNumber.arabic,
		colPageNumber.arabic, colNotes.arabic, headerCreatedAt,
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.FirstName, r.LastName, r.RegNumber, r.PageNumber, r.Notes,
			timex.FormatArabicDate(r.CreatedAt, loc),
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
