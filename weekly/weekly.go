// Package weekly emails the current audit snapshot, at most once per
// distinct run timestamp. The last-sent marker lives in the durable
// property store so a restart never re-sends an unchanged snapshot.
package weekly

import (
	"context"
	"fmt"
	"strings"

	"auditmail/config"
	"auditmail/email"
	"auditmail/render"
	"auditmail/sheets"

	"github.com/apex/log"
)

// markerKey is the property holding the timestamp of the last sent report.
const markerKey = "weekly_audit_last_sent"

// Marker is the durable key-value surface the mailer needs.
type Marker interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string) error
}

// Service runs the weekly snapshot mailer.
type Service struct {
	cfg    *config.Config
	store  sheets.Store
	sender email.Sender
	marker Marker
}

// NewService creates a new weekly mailer
func NewService(cfg *config.Config, store sheets.Store, sender email.Sender, marker Marker) *Service {
	return &Service{cfg: cfg, store: store, sender: sender, marker: marker}
}

// Result summarizes one run.
type Result struct {
	Sent      bool   `json:"sent"`
	Timestamp string `json:"timestamp,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Run reads the snapshot range and reference cells, renders the report and
// sends it unless the snapshot timestamp matches the last sent marker. The
// marker is only advanced after a successful send, so a failed send is
// retried on the next run.
func (s *Service) Run() (*Result, error) {
	ctx := context.Background()

	rawStamp, err := s.store.GetCell(s.cfg.SnapshotSheet, s.cfg.TimestampCell)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot timestamp: %w", err)
	}
	stamp := CanonicalTimestamp(rawStamp)
	if stamp == "" {
		log.Info("Snapshot timestamp is empty, nothing to send")
		return &Result{Reason: "empty timestamp"}, nil
	}

	last, _, err := s.marker.Get(ctx, markerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read last-sent marker: %w", err)
	}
	if stamp == last {
		log.Infof("Snapshot %s already sent, skipping", stamp)
		return &Result{Timestamp: stamp, Reason: "already sent"}, nil
	}

	recipients, cc, err := s.readRecipients()
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("recipient cell %s is empty", s.cfg.WeeklyToCell)
	}

	body, err := s.buildBody()
	if err != nil {
		return nil, err
	}

	msg := &email.Message{
		To:       recipients,
		Cc:       cc,
		Subject:  "Weekly Audit Report - " + stamp,
		HTMLBody: body,
	}
	if err := s.sender.Send(msg); err != nil {
		// The marker stays put so the next run retries this snapshot.
		log.WithError(err).Error("Weekly audit send failed")
		return &Result{Timestamp: stamp, Reason: "send failed"}, nil
	}

	if err := s.marker.Set(ctx, markerKey, stamp); err != nil {
		log.WithError(err).Error("Marker update failed, report may be re-sent next run")
	}
	return &Result{Sent: true, Timestamp: stamp}, nil
}

func (s *Service) buildBody() (string, error) {
	rows, err := s.store.GetRange(s.cfg.SnapshotSheet, s.cfg.SnapshotRange)
	if err != nil {
		return "", fmt.Errorf("failed to read snapshot range: %w", err)
	}

	refs := make([]string, 0, len(s.cfg.ReferenceCells))
	for _, ref := range s.cfg.ReferenceCells {
		v, err := s.store.GetCell(s.cfg.SnapshotSheet, ref)
		if err != nil {
			return "", fmt.Errorf("failed to read reference cell %s: %w", ref, err)
		}
		refs = append(refs, v)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family:Arial,sans-serif;color:#333333;">
<p>Hello,</p>
<p>The latest weekly audit results:</p>
%s
<p>Audit criteria:</p>
%s
<p>Best regards,<br>HR Reporting</p>
</body>
</html>`, render.SnapshotTable(rows), render.CriteriaLegend(refs)), nil
}

func (s *Service) readRecipients() (to, cc []string, err error) {
	rawTo, err := s.store.GetCell(s.cfg.SnapshotSheet, s.cfg.WeeklyToCell)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read recipient cell: %w", err)
	}
	rawCc, err := s.store.GetCell(s.cfg.SnapshotSheet, s.cfg.WeeklyCcCell)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read cc cell: %w", err)
	}
	return splitAddresses(rawTo), splitAddresses(rawCc), nil
}

// CanonicalTimestamp normalizes the snapshot timestamp for marker
// comparison: date-like values are reformatted to one canonical layout,
// anything else is compared by its raw trimmed form.
func CanonicalTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if ts, ok := sheets.ParseTime(raw); ok {
		return ts.Format(sheets.TimeLayout)
	}
	return raw
}

func splitAddresses(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
