// Package attendance reads the attendance sheet, groups records by
// department and mails one styled report per department.
package attendance

import (
	"errors"
	"fmt"
	"strings"
)

// Column names as they appear in the attendance header row.
const (
	colDepartment = "Department"
	colName       = "Name"
	colEmployeeID = "Employee ID"
	colAMScan     = "AM Face Scan"
	colPMScan     = "PM Face Scan"
	colAttendance = "Attendance"
	colHRAdj      = "HR - Adj"
	colKPILeave   = "KPI Leave"
	colKPIPct     = "KPI (%)"
)

// sentinelColumn marks the header row; the sheet often carries banner rows
// above it.
const sentinelColumn = colDepartment

var requiredColumns = []string{
	colDepartment,
	colName,
	colEmployeeID,
	colAMScan,
	colPMScan,
	colAttendance,
	colHRAdj,
	colKPILeave,
	colKPIPct,
}

// ErrNoHeaderRow is returned when no row contains the sentinel column.
var ErrNoHeaderRow = errors.New("attendance: header row not found")

// MissingColumnError is returned when the header row lacks a required
// column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("attendance: required column %q not found", e.Column)
}

// Record is one attendance row with all values trimmed at ingestion.
type Record struct {
	Department string
	Name       string
	EmployeeID string
	AMFaceScan string
	PMFaceScan string
	Attendance string
	HRAdj      string
	KPILeave   string
	KPIPercent string
}

// ParseRecords locates the header row, validates the schema and parses all
// non-blank rows below it.
func ParseRecords(rows [][]string) ([]Record, error) {
	headerIdx, err := findHeaderRow(rows)
	if err != nil {
		return nil, err
	}
	schema, err := resolveSchema(rows[headerIdx])
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, row := range rows[headerIdx+1:] {
		if blankRow(row) {
			continue
		}
		records = append(records, Record{
			Department: cellAt(row, schema[colDepartment]),
			Name:       cellAt(row, schema[colName]),
			EmployeeID: cellAt(row, schema[colEmployeeID]),
			AMFaceScan: cellAt(row, schema[colAMScan]),
			PMFaceScan: cellAt(row, schema[colPMScan]),
			Attendance: cellAt(row, schema[colAttendance]),
			HRAdj:      cellAt(row, schema[colHRAdj]),
			KPILeave:   cellAt(row, schema[colKPILeave]),
			KPIPercent: cellAt(row, schema[colKPIPct]),
		})
	}
	return records, nil
}

// findHeaderRow scans top-down for the first row containing a cell exactly
// equal to the sentinel column name.
func findHeaderRow(rows [][]string) (int, error) {
	for i, row := range rows {
		for _, cell := range row {
			if cell == sentinelColumn {
				return i, nil
			}
		}
	}
	return 0, ErrNoHeaderRow
}

// resolveSchema builds a validated column-index map for all required
// columns.
func resolveSchema(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, cell := range header {
		if _, seen := index[cell]; !seen {
			index[cell] = i
		}
	}
	schema := make(map[string]int, len(requiredColumns))
	for _, col := range requiredColumns {
		idx, ok := index[col]
		if !ok {
			return nil, &MissingColumnError{Column: col}
		}
		schema[col] = idx
	}
	return schema, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// Grouping holds records per department, preserving first-seen department
// order and source order within each group.
type Grouping struct {
	Order  []string
	Groups map[string][]Record
}

// GroupByDepartment groups records by their department code. Records with
// an empty department are dropped.
func GroupByDepartment(records []Record) *Grouping {
	g := &Grouping{Groups: make(map[string][]Record)}
	for _, r := range records {
		if r.Department == "" {
			continue
		}
		if _, ok := g.Groups[r.Department]; !ok {
			g.Order = append(g.Order, r.Department)
		}
		g.Groups[r.Department] = append(g.Groups[r.Department], r)
	}
	return g
}
