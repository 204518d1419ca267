package sheets

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is an xlsx-backed Store. All reads and writes operate on the
// in-memory workbook; Save persists it back to disk.
type Workbook struct {
	path string
	f    *excelize.File
}

// Open opens an existing workbook file.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{path: path, f: f}, nil
}

// NewWorkbook creates an empty in-memory workbook. Used by tests and for
// bootstrapping a fresh audit file.
func NewWorkbook() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

// AddSheet creates a sheet if it does not exist yet.
func (w *Workbook) AddSheet(name string) error {
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return nil
}

// GetFullRange returns every populated row of a sheet.
func (w *Workbook) GetFullRange(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// GetRange returns the cells of an A1-style rectangular range. A bare cell
// reference is treated as a 1x1 range.
func (w *Workbook) GetRange(sheet, a1Range string) ([][]string, error) {
	startCol, startRow, endCol, endRow, err := parseRange(a1Range)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, endRow-startRow+1)
	for row := startRow; row <= endRow; row++ {
		line := make([]string, 0, endCol-startCol+1)
		for col := startCol; col <= endCol; col++ {
			ref, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			v, err := w.f.GetCellValue(sheet, ref)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s!%s: %w", sheet, ref, err)
			}
			line = append(line, v)
		}
		out = append(out, line)
	}
	return out, nil
}

// GetCell returns the value of a single cell.
func (w *Workbook) GetCell(sheet, a1Ref string) (string, error) {
	v, err := w.f.GetCellValue(sheet, a1Ref)
	if err != nil {
		return "", fmt.Errorf("failed to read %s!%s: %w", sheet, a1Ref, err)
	}
	return v, nil
}

// AppendRows writes rows after the last populated row of a sheet.
func (w *Workbook) AppendRows(sheet string, rows [][]string) error {
	existing, err := w.f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return w.SetRange(sheet, len(existing)+1, 1, rows)
}

// SetRange writes a matrix with its top-left corner at the given 1-based
// row and column.
func (w *Workbook) SetRange(sheet string, startRow, startCol int, rows [][]string) error {
	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(startCol, startRow+i)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := w.f.SetSheetRow(sheet, ref, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", startRow+i, sheet, err)
		}
	}
	return nil
}

// SetCell writes a single cell.
func (w *Workbook) SetCell(sheet, a1Ref, value string) error {
	if err := w.f.SetCellValue(sheet, a1Ref, value); err != nil {
		return fmt.Errorf("failed to write %s!%s: %w", sheet, a1Ref, err)
	}
	return nil
}

// Save persists the workbook back to its file. In-memory workbooks without
// a path are left untouched.
func (w *Workbook) Save() error {
	if w.path == "" {
		return nil
	}
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

func parseRange(a1Range string) (startCol, startRow, endCol, endRow int, err error) {
	start, end, found := strings.Cut(a1Range, ":")
	if !found {
		end = start
	}
	startCol, startRow, err = excelize.CellNameToCoordinates(start)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("bad range %q: %w", a1Range, err)
	}
	endCol, endRow, err = excelize.CellNameToCoordinates(end)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("bad range %q: %w", a1Range, err)
	}
	if endRow < startRow || endCol < startCol {
		return 0, 0, 0, 0, fmt.Errorf("bad range %q: end before start", a1Range)
	}
	return startCol, startRow, endCol, endRow, nil
}
