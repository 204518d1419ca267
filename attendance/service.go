package attendance

import (
	"fmt"
	"strings"

	"auditmail/config"
	"auditmail/email"
	"auditmail/render"
	"auditmail/sheets"

	"github.com/apex/log"
)

// Service runs the department attendance mailer.
type Service struct {
	cfg    *config.Config
	store  sheets.Store
	sender email.Sender
}

// NewService creates a new attendance mailer
func NewService(cfg *config.Config, store sheets.Store, sender email.Sender) *Service {
	return &Service{cfg: cfg, store: store, sender: sender}
}

// Summary counts the per-department outcomes of one run.
type Summary struct {
	Processed      int `json:"processed"`
	Sent           int `json:"sent"`
	SkippedNoData  int `json:"skipped_no_data"`
	SkippedNoEmail int `json:"skipped_no_email"`
}

// Run parses the attendance sheet, groups by department and sends one
// email per department that has both records and a recipient mapping. A
// failed send is logged and counted but never blocks the remaining
// departments. Structural problems (no header row, missing column) fail
// the whole run.
func (s *Service) Run() (*Summary, error) {
	rows, err := s.store.GetFullRange(s.cfg.AttendanceSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance sheet: %w", err)
	}
	records, err := ParseRecords(rows)
	if err != nil {
		return nil, err
	}

	grouping := GroupByDepartment(records)
	deptEmails, err := s.loadDeptEmails()
	if err != nil {
		return nil, err
	}

	log.Infof("Loaded %d attendance records in %d departments (%d mapped to emails)",
		len(records), len(grouping.Order), len(deptEmails))

	summary := &Summary{}

	// Departments with a mailing entry but no attendance rows this run.
	for dept := range deptEmails {
		if _, ok := grouping.Groups[dept]; !ok {
			log.Infof("Department %s: no attendance data, skipping", dept)
			summary.SkippedNoData++
		}
	}

	for _, dept := range grouping.Order {
		recipients := splitRecipients(deptEmails[dept])
		if len(recipients) == 0 {
			log.Warnf("Department %s: no email mapping, skipping %d records",
				dept, len(grouping.Groups[dept]))
			summary.SkippedNoEmail++
			continue
		}
		summary.Processed++

		if err := s.sendDepartment(dept, recipients, grouping.Groups[dept]); err != nil {
			log.Warnf("Department %s: send failed: %v", dept, err)
			continue
		}
		summary.Sent++
	}

	log.Infof("Attendance run done: %d processed, %d sent, %d no data, %d no email",
		summary.Processed, summary.Sent, summary.SkippedNoData, summary.SkippedNoEmail)
	return summary, nil
}

func (s *Service) sendDepartment(dept string, recipients []string, records []Record) error {
	label := s.cfg.DeptLabel(dept)
	blob, err := recordsCSV(records)
	if err != nil {
		return fmt.Errorf("failed to build CSV: %w", err)
	}
	return s.sender.Send(&email.Message{
		To:       recipients,
		Subject:  fmt.Sprintf("Attendance Report - %s", label),
		HTMLBody: emailBody(label, records),
		Attachments: []email.Attachment{{
			Filename: fmt.Sprintf("attendance_%s.csv", dept),
			MIMEType: "text/csv",
			Content:  blob,
		}},
	})
}

// loadDeptEmails reads the department to recipient mapping sheet. The raw
// recipient string is kept as-is (comma-joined, unvalidated).
func (s *Service) loadDeptEmails() (map[string]string, error) {
	rows, err := s.store.GetFullRange(s.cfg.DeptEmailSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read department email sheet: %w", err)
	}
	emails := make(map[string]string)
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		dept := strings.TrimSpace(row[0])
		if dept == "" || dept == colDepartment {
			continue
		}
		emails[dept] = row[1]
	}
	return emails, nil
}

// csvHeader is the attachment header, in record-field order. Department is
// included here even though the HTML table drops it.
var csvHeader = []string{
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

func recordsCSV(records []Record) ([]byte, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Department,
			r.Name,
			r.EmployeeID,
			r.AMFaceScan,
			r.PMFaceScan,
			r.Attendance,
			r.HRAdj,
			r.KPILeave,
			r.KPIPercent,
		})
	}
	return render.WriteCSV(csvHeader, rows)
}

func splitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
