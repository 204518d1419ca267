package attendance

import (
	"errors"
	"reflect"
	"testing"
)

func headerRow() []string {
	return []string{
		"Department", "Name", "Employee ID", "AM Face Scan", "PM Face Scan",
		"Attendance", "HR - Adj", "KPI Leave", "KPI (%)",
	}
}

func dataRow(dept, name string) []string {
	return []string{dept, name, "E-1", "5", "5", "5", "0", "0", "0.95"}
}

func TestParseRecords(t *testing.T) {
	testCases := []struct {
		name string
		rows [][]string

		expectCount int
		expectErr   error
	}{
		{
			name: "Header on first row",
			rows: [][]string{
				headerRow(),
				dataRow("ACC", "Alice"),
				dataRow("HR", "Bob"),
			},
			expectCount: 2,
		},
		{
			name: "Header below banner rows",
			rows: [][]string{
				{"Weekly Attendance"},
				{""},
				headerRow(),
				dataRow("ACC", "Alice"),
			},
			expectCount: 1,
		},
		{
			name: "Blank rows skipped",
			rows: [][]string{
				headerRow(),
				dataRow("ACC", "Alice"),
				{"", "", ""},
				dataRow("HR", "Bob"),
			},
			expectCount: 2,
		},
		{
			name: "No header row",
			rows: [][]string{
				{"Weekly Attendance"},
				{"nothing", "to", "see"},
			},
			expectErr: ErrNoHeaderRow,
		},
		{
			name:      "Empty sheet",
			rows:      nil,
			expectErr: ErrNoHeaderRow,
		},
	}

	for _, tc := range testCases {
		records, err := ParseRecords(tc.rows)
		if tc.expectErr != nil {
			if !errors.Is(err, tc.expectErr) {
				t.Errorf("%s: expected error %v, got %v", tc.name, tc.expectErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if len(records) != tc.expectCount {
			t.Errorf("%s: expected %d records, got %d", tc.name, tc.expectCount, len(records))
		}
	}
}

func TestParseRecordsMissingColumn(t *testing.T) {
	rows := [][]string{
		{"Department", "Name", "Employee ID"}, // most columns missing
		dataRow("ACC", "Alice"),
	}

	_, err := ParseRecords(rows)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missing.Column != colAMScan {
		t.Errorf("expected first missing column %q, got %q", colAMScan, missing.Column)
	}
}

func TestParseRecordsTrimsValues(t *testing.T) {
	rows := [][]string{
		headerRow(),
		{" ACC ", "  Alice  ", " E-1", "5 ", "5", "5", "0", "0", " 0.95 "},
	}

	records, err := ParseRecords(rows)
	if err != nil {
		t.Fatalf("ParseRecords: %v", err)
	}
	want := Record{
		Department: "ACC", Name: "Alice", EmployeeID: "E-1",
		AMFaceScan: "5", PMFaceScan: "5", Attendance: "5",
		HRAdj: "0", KPILeave: "0", KPIPercent: "0.95",
	}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("expected %+v, got %+v", want, records[0])
	}
}

func TestParseRecordsShortDataRow(t *testing.T) {
	rows := [][]string{
		headerRow(),
		{"ACC", "Alice"}, // trailing cells absent
	}

	records, err := ParseRecords(rows)
	if err != nil {
		t.Fatalf("ParseRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].KPIPercent != "" {
		t.Errorf("expected empty KPI for short row, got %q", records[0].KPIPercent)
	}
}

func TestGroupByDepartment(t *testing.T) {
	records := []Record{
		{Department: "A", Name: "rec0"},
		{Department: "B", Name: "rec1"},
		{Department: "A", Name: "rec2"},
		{Department: "", Name: "dropped"},
	}

	g := GroupByDepartment(records)

	if !reflect.DeepEqual(g.Order, []string{"A", "B"}) {
		t.Errorf("expected order [A B], got %v", g.Order)
	}
	if len(g.Groups["A"]) != 2 || g.Groups["A"][0].Name != "rec0" || g.Groups["A"][1].Name != "rec2" {
		t.Errorf("expected A to keep source order [rec0 rec2], got %v", g.Groups["A"])
	}
	if len(g.Groups["B"]) != 1 || g.Groups["B"][0].Name != "rec1" {
		t.Errorf("expected B = [rec1], got %v", g.Groups["B"])
	}
	if _, ok := g.Groups[""]; ok {
		t.Error("expected records without a department to be dropped")
	}
}
