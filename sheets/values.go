package sheets

import (
	"strings"
	"time"
)

// TimeLayout is the canonical form used when a timestamp is written back
// into a control cell.
const TimeLayout = "2006-01-02 15:04:05"

// Cell values come back as display strings, so timestamps may arrive in a
// handful of shapes depending on how the sheet was filled in.
var timeLayouts = []string{
	TimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
	"1/2/2006",
}

// ParseTime parses a cell value as a timestamp. The second return value is
// false when the value is empty or matches none of the accepted layouts.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
