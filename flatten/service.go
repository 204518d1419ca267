package flatten

import (
	"fmt"
	"time"

	"auditmail/config"
	"auditmail/sheets"

	"github.com/apex/log"
)

// flatHeader labels the target sheet. It carries 21 labels while emitted
// rows carry 19 values.
// TODO: confirm with the audit owners which two group columns the header
// over-declares before changing either the header or the row layout.
var flatHeader = []string{
	"Timestamp",
	"Email Address",
	"Request",
	"Week Start Date",
	"Ref No.",
	"Timesheet",
	"Leave Form",
	"OT Form",
	"Shift Plan",
	"Face Scan AM",
	"Face Scan PM",
	"Late Arrival",
	"Early Leave",
	"Missed Scan",
	"HR Adjustment",
	"KPI Deduction",
	"Supervisor Sign-off",
	"HR Sign-off",
	"Payroll Lock",
	"Archive",
	"Remark",
}

// Service runs the flattening pipeline against the workbook.
type Service struct {
	cfg   *config.Config
	store sheets.Store
}

// NewService creates a new flattening service
func NewService(cfg *config.Config, store sheets.Store) *Service {
	return &Service{cfg: cfg, store: store}
}

// Result summarizes one flattening run.
type Result struct {
	SourceRows int    `json:"source_rows"`
	RowsOut    int    `json:"rows_out"`
	Watermark  string `json:"watermark,omitempty"`
}

// Run reads the source sheet, appends every new flat row to the target
// sheet in one bulk write and advances the watermark cell. Re-running with
// no new source rows appends nothing and leaves the watermark unchanged.
func (s *Service) Run() (*Result, error) {
	rows, err := s.store.GetFullRange(s.cfg.SourceSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read source sheet: %w", err)
	}
	if len(rows) > 0 {
		rows = rows[1:] // header
	}

	if err := s.ensureHeader(); err != nil {
		return nil, err
	}

	prior := s.readWatermark()
	flat, next := Flatten(rows, prior)
	log.Infof("Flattened %d source rows into %d new rows (watermark %v)",
		len(rows), len(flat), prior)

	if len(flat) > 0 {
		if err := s.store.AppendRows(s.cfg.FlatSheet, flat); err != nil {
			return nil, fmt.Errorf("failed to append flat rows: %w", err)
		}
	}

	result := &Result{SourceRows: len(rows), RowsOut: len(flat)}
	if next.After(prior) {
		stamp := next.Format(sheets.TimeLayout)
		result.Watermark = stamp
		// Best effort: a failed watermark write only means the next run
		// re-detects these rows.
		if err := s.store.SetCell(s.cfg.FlatSheet, s.cfg.WatermarkCell, stamp); err != nil {
			log.WithError(err).Error("Watermark write failed, next run may re-emit rows")
		}
	}
	return result, nil
}

// readWatermark reads the stored watermark. A missing or unparseable value
// is treated as absent, which re-processes everything.
func (s *Service) readWatermark() time.Time {
	raw, err := s.store.GetCell(s.cfg.FlatSheet, s.cfg.WatermarkCell)
	if err != nil {
		log.WithError(err).Warn("Failed to read watermark cell, processing full source")
		return time.Time{}
	}
	ts, ok := sheets.ParseTime(raw)
	if !ok {
		return time.Time{}
	}
	return ts
}

// ensureHeader writes the header row when the target sheet is still empty.
func (s *Service) ensureHeader() error {
	existing, err := s.store.GetFullRange(s.cfg.FlatSheet)
	if err != nil {
		return fmt.Errorf("failed to read target sheet: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	if err := s.store.SetRange(s.cfg.FlatSheet, 1, 1, [][]string{flatHeader}); err != nil {
		return fmt.Errorf("failed to write target header: %w", err)
	}
	return nil
}
