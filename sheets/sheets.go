// Package sheets provides tabular access to the audit workbook. The
// pipelines only see the Store interface; the xlsx-backed Workbook is the
// production implementation.
package sheets

// Store is the narrow surface the report pipelines need from the workbook:
// rectangular reads, bulk appends and single-cell control value updates.
type Store interface {
	// GetFullRange returns every populated row of a sheet.
	GetFullRange(sheet string) ([][]string, error)
	// GetRange returns the cells of an A1-style range such as "A1:R3".
	GetRange(sheet, a1Range string) ([][]string, error)
	// GetCell returns the value of a single cell such as "W1".
	GetCell(sheet, a1Ref string) (string, error)
	// AppendRows writes rows after the last populated row of a sheet.
	AppendRows(sheet string, rows [][]string) error
	// SetRange writes a matrix with its top-left corner at the given
	// 1-based row and column.
	SetRange(sheet string, startRow, startCol int, rows [][]string) error
	// SetCell writes a single cell.
	SetCell(sheet, a1Ref, value string) error
}
