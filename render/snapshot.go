// Package render builds the HTML and CSV artifacts for the report emails.
// All HTML carries inline styles only, so it renders in plain email
// clients.
package render

import (
	"fmt"
	"html"
	"strings"
)

const (
	cellBase    = "border:1px solid #999999;padding:6px 10px;font-weight:bold;text-align:center;"
	headerStyle = "border:1px solid #999999;padding:6px 10px;background-color:#4472c4;color:#ffffff;"
	passStyle   = cellBase + "background-color:#c6efce;color:#006100;"
	failStyle   = cellBase + "background-color:#ffc7ce;color:#9c0006;"
)

// SnapshotTable renders the audit snapshot range as a table. The first row
// becomes the header band; PASS and FAIL cells get their own colors, every
// other cell is neutral bold-centered.
func SnapshotTable(rows [][]string) string {
	var b strings.Builder
	b.WriteString(`<table style="border-collapse:collapse;font-family:Arial,sans-serif;font-size:13px;">`)
	for i, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			if i == 0 {
				fmt.Fprintf(&b, `<th style="%s">%s</th>`, headerStyle, html.EscapeString(cell))
				continue
			}
			fmt.Fprintf(&b, `<td style="%s">%s</td>`, resultStyle(cell), html.EscapeString(cell))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

func resultStyle(cell string) string {
	switch strings.ToUpper(strings.TrimSpace(cell)) {
	case "PASS":
		return passStyle
	case "FAIL":
		return failStyle
	}
	return cellBase
}
