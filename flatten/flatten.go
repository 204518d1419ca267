// Package flatten expands wide audit rows into long-format rows. A source
// row carries 4 static cells followed by 20 repeated 17-cell audit groups;
// every non-empty group becomes one output row. A timestamp watermark makes
// re-runs incremental: rows at or below the watermark are never re-emitted.
package flatten

import (
	"strings"
	"time"

	"auditmail/sheets"
)

const (
	staticCols = 4
	groupCount = 20
	groupSize  = 17

	// totalCols is the minimum width of a well-formed source row.
	totalCols = staticCols + groupCount*groupSize
)

// Flatten expands source rows (header already sliced off) into flat rows
// and returns the advanced watermark. Rows are processed in order; a row is
// eligible when its timestamp parses and is strictly newer than prior.
// Short rows and rows with an empty or unparseable timestamp are dropped
// silently; processing the rest of the batch is best effort.
func Flatten(rows [][]string, prior time.Time) ([][]string, time.Time) {
	var out [][]string
	next := prior
	for _, row := range rows {
		if len(row) < totalCols {
			continue
		}
		ts, ok := sheets.ParseTime(row[0])
		if !ok {
			continue
		}
		if !ts.After(prior) {
			continue
		}

		prefix := row[:staticCols]
		for g := 0; g < groupCount; g++ {
			group := row[staticCols+g*groupSize : staticCols+(g+1)*groupSize]
			if groupEmpty(group) {
				continue
			}
			// The leading "ref no." and trailing "remark" cells of
			// each group stay behind.
			flat := make([]string, 0, staticCols+groupSize-2)
			flat = append(flat, prefix...)
			flat = append(flat, group[1:groupSize-1]...)
			out = append(out, flat)
		}

		if ts.After(next) {
			next = ts
		}
	}
	return out, next
}

func groupEmpty(group []string) bool {
	for _, cell := range group {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
