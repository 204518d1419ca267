package attendance

import (
	"fmt"
	"html"
	"strings"

	"auditmail/render"
)

// The Department column is dropped from display; these are the visible
// columns in order.
var displayColumns = []string{
	colName,
	colEmployeeID,
	colAMScan,
	colPMScan,
	colAttendance,
	colHRAdj,
	colKPILeave,
	colKPIPct,
}

const (
	evenRowBg = "#ffffff"
	oddRowBg  = "#dce6f1"
)

// colWidth returns the pixel width for a visible column. The middle block
// shares one width.
func colWidth(i int) int {
	switch i {
	case 0:
		return 160
	case 1:
		return 90
	case 7:
		return 70
	}
	return 80
}

// Table renders the department's records as an inline-styled table. Name
// is left-aligned, everything else centered; rows alternate background by
// parity.
func Table(records []Record) string {
	var b strings.Builder
	b.WriteString(`<table style="border-collapse:collapse;font-family:Arial,sans-serif;font-size:13px;">`)

	b.WriteString("<tr>")
	for i, col := range displayColumns {
		fmt.Fprintf(&b,
			`<th style="border:1px solid #999999;padding:6px 8px;background-color:#305496;color:#ffffff;width:%dpx;">%s</th>`,
			colWidth(i), html.EscapeString(col))
	}
	b.WriteString("</tr>")

	for i, r := range records {
		bg := evenRowBg
		if i%2 == 1 {
			bg = oddRowBg
		}
		b.WriteString("<tr>")
		for j, value := range displayValues(r) {
			align := "center"
			if j == 0 {
				align = "left"
			}
			fmt.Fprintf(&b,
				`<td style="border:1px solid #999999;padding:4px 8px;background-color:%s;text-align:%s;">%s</td>`,
				bg, align, html.EscapeString(value))
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</table>")
	return b.String()
}

func displayValues(r Record) []string {
	return []string{
		render.OrZero(r.Name),
		render.OrZero(r.EmployeeID),
		render.OrZero(r.AMFaceScan),
		render.OrZero(r.PMFaceScan),
		render.OrZero(r.Attendance),
		render.OrZero(r.HRAdj),
		render.OrZero(r.KPILeave),
		render.KPIPercent(r.KPIPercent),
	}
}

// emailBody wraps the table in the report email shell.
func emailBody(label string, records []Record) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family:Arial,sans-serif;color:#333333;">
<p>Dear %s Team,</p>
<p>Please find this week's attendance summary below. The full data is attached as CSV.</p>
%s
<p>Best regards,<br>HR Reporting</p>
</body>
</html>`, html.EscapeString(label), Table(records))
}
