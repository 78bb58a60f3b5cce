package excel

import (
	"bytes"
	"fmt"
	"strings"

	"school-admin-db/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// Workbook holds the first sheet of an uploaded spreadsheet as a grid of
// raw cell values. Raw mode keeps date/time cells as their underlying
// serial numbers instead of locale-formatted text, so the normalizers
// downstream can tell a typed cell from free text.
type Workbook struct {
	rows [][]string
}

func Open(data []byte) (*Workbook, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidFileFormat, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ErrInvalidFileFormat
	}

	rows, err := file.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &Workbook{rows: rows}, nil
}

// Rows returns the grid with the header row at index 0.
func (w *Workbook) Rows() [][]string {
	return w.rows
}

func (w *Workbook) Header() []string {
	if len(w.rows) == 0 {
		return nil
	}
	return w.rows[0]
}

// Record is one data row with both header-keyed and positional access.
// Header keys are trimmed; positional access is the fallback for sheets
// whose header text is unrecognized.
type Record struct {
	fields map[string]string
	cells  []string
}

func (r Record) Get(header string) string {
	return strings.TrimSpace(r.fields[header])
}

func (r Record) Cell(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r Record) Len() int {
	return len(r.cells)
}

// Records returns data rows keyed by header text.
func (w *Workbook) Records() []Record {
	if len(w.rows) < 2 {
		return nil
	}

	header := w.rows[0]
	records := make([]Record, 0, len(w.rows)-1)
	for _, row := range w.rows[1:] {
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[strings.TrimSpace(name)] = row[i]
			}
		}
		records = append(records, Record{fields: fields, cells: row})
	}
	return records
}
