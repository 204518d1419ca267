package flatten

import (
	"reflect"
	"strconv"
	"testing"
	"time"
)

// makeSourceRow builds a full-width source row with the given static
// prefix and audit groups (keyed by group index).
func makeSourceRow(ts, email, request, week string, groups map[int][]string) []string {
	row := make([]string, totalCols)
	row[0] = ts
	row[1] = email
	row[2] = request
	row[3] = week
	for g, cells := range groups {
		copy(row[staticCols+g*groupSize:], cells)
	}
	return row
}

func fullGroup(prefix string) []string {
	cells := make([]string, groupSize)
	for i := range cells {
		cells[i] = prefix + strconv.Itoa(i)
	}
	return cells
}

func TestFlatten(t *testing.T) {
	t1 := "2024-03-04 09:30:00"
	testCases := []struct {
		name  string
		rows  [][]string
		prior time.Time

		expectRows      int
		expectWatermark string
	}{
		{
			name: "Single non-empty group among twenty",
			rows: [][]string{
				makeSourceRow(t1, "e@x.com", "req", "2024-01-01",
					map[int][]string{4: fullGroup("g")}),
			},
			expectRows:      1,
			expectWatermark: t1,
		},
		{
			name: "All groups empty still advances watermark",
			rows: [][]string{
				makeSourceRow(t1, "e@x.com", "req", "2024-01-01", nil),
			},
			expectRows:      0,
			expectWatermark: t1,
		},
		{
			name: "Short row skipped",
			rows: [][]string{
				{t1, "e@x.com", "req", "2024-01-01", "only", "a", "few", "cells"},
			},
			expectRows: 0,
		},
		{
			name: "Empty timestamp skipped",
			rows: [][]string{
				makeSourceRow("", "e@x.com", "req", "2024-01-01",
					map[int][]string{0: fullGroup("g")}),
			},
			expectRows: 0,
		},
		{
			name: "Unparseable timestamp skipped",
			rows: [][]string{
				makeSourceRow("not a date", "e@x.com", "req", "2024-01-01",
					map[int][]string{0: fullGroup("g")}),
			},
			expectRows: 0,
		},
		{
			name: "Row at watermark not re-emitted",
			rows: [][]string{
				makeSourceRow(t1, "e@x.com", "req", "2024-01-01",
					map[int][]string{0: fullGroup("g")}),
			},
			prior:           mustParse(t, t1),
			expectRows:      0,
			expectWatermark: t1,
		},
		{
			name: "Every non-empty group emits one row",
			rows: [][]string{
				makeSourceRow(t1, "e@x.com", "req", "2024-01-01",
					map[int][]string{0: fullGroup("a"), 7: fullGroup("b"), 19: fullGroup("c")}),
			},
			expectRows:      3,
			expectWatermark: t1,
		},
		{
			name: "Watermark tracks max eligible timestamp",
			rows: [][]string{
				makeSourceRow("2024-03-06 08:00:00", "a@x.com", "req", "2024-01-01",
					map[int][]string{0: fullGroup("a")}),
				makeSourceRow(t1, "b@x.com", "req", "2024-01-01",
					map[int][]string{0: fullGroup("b")}),
			},
			expectRows:      2,
			expectWatermark: "2024-03-06 08:00:00",
		},
	}

	for _, tc := range testCases {
		out, next := Flatten(tc.rows, tc.prior)
		if len(out) != tc.expectRows {
			t.Errorf("%s: expected %d rows, got %d", tc.name, tc.expectRows, len(out))
		}
		if tc.expectWatermark != "" {
			if got := next.Format("2006-01-02 15:04:05"); got != tc.expectWatermark {
				t.Errorf("%s: expected watermark %s, got %s", tc.name, tc.expectWatermark, got)
			}
		} else if !next.Equal(tc.prior) {
			t.Errorf("%s: expected unchanged watermark, got %v", tc.name, next)
		}
	}
}

func TestFlattenRowShape(t *testing.T) {
	group := fullGroup("g")
	row := makeSourceRow("2024-03-04 09:30:00", "e@x.com", "req", "2024-01-01",
		map[int][]string{3: group})

	out, _ := Flatten([][]string{row}, time.Time{})
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}

	// 4 static cells plus the group without its leading ref-no and
	// trailing remark cells.
	want := append([]string{"2024-03-04 09:30:00", "e@x.com", "req", "2024-01-01"}, group[1:16]...)
	if !reflect.DeepEqual(out[0], want) {
		t.Errorf("expected row %v, got %v", want, out[0])
	}
	if len(out[0]) != 19 {
		t.Errorf("expected 19 values, got %d", len(out[0]))
	}
}

func TestFlattenIdempotent(t *testing.T) {
	rows := [][]string{
		makeSourceRow("2024-03-04 09:30:00", "a@x.com", "req", "2024-01-01",
			map[int][]string{0: fullGroup("a")}),
		makeSourceRow("2024-03-05 10:00:00", "b@x.com", "req", "2024-01-01",
			map[int][]string{1: fullGroup("b")}),
	}

	first, watermark := Flatten(rows, time.Time{})
	if len(first) != 2 {
		t.Fatalf("first run: expected 2 rows, got %d", len(first))
	}

	second, next := Flatten(rows, watermark)
	if len(second) != 0 {
		t.Errorf("second run: expected 0 rows, got %d", len(second))
	}
	if !next.Equal(watermark) {
		t.Errorf("second run: expected watermark %v, got %v", watermark, next)
	}
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		t.Fatalf("bad test timestamp %s: %v", s, err)
	}
	return ts
}
