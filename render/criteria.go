package render

import (
	"fmt"
	"html"
	"strings"
)

// criteriaTexts describes the 20 audit checks, in the order of the
// reference cells. Static configuration, not derived from sheet data.
var criteriaTexts = []string{
	"Timesheet submitted before Monday 10:00",
	"All leave forms approved by the supervisor",
	"Overtime forms filed within 48 hours",
	"Shift plan published before week start",
	"AM face scans complete for every working day",
	"PM face scans complete for every working day",
	"Late arrivals below the monthly threshold",
	"Early departures documented with a reason",
	"Missed scans backed by a correction form",
	"HR adjustments countersigned",
	"KPI deductions reconciled with leave records",
	"Supervisor sign-off present for the week",
	"HR sign-off present for the week",
	"Payroll lock applied after final review",
	"Archived copies stored in the shared drive",
	"No duplicate employee IDs in the roster",
	"Department codes match the master list",
	"Contact emails verified this quarter",
	"Escalations from last week closed out",
	"Audit notes free of outstanding remarks",
}

// CriteriaLegend renders the two-column legend pairing each reference
// value with its criteria description.
func CriteriaLegend(values []string) string {
	var b strings.Builder
	b.WriteString(`<table style="border-collapse:collapse;font-family:Arial,sans-serif;font-size:12px;margin-top:16px;">`)
	b.WriteString(`<tr>` +
		`<th style="` + headerStyle + `">Value</th>` +
		`<th style="` + headerStyle + `">Criteria</th>` +
		`</tr>`)
	for i, text := range criteriaTexts {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		fmt.Fprintf(&b,
			`<tr><td style="%s">%s</td><td style="border:1px solid #999999;padding:4px 10px;text-align:left;">%s</td></tr>`,
			cellBase, html.EscapeString(value), html.EscapeString(text))
	}
	b.WriteString("</table>")
	return b.String()
}
