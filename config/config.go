package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the reporting service. The sheet names
// and cell addresses mirror the audit workbook layout and are the entire
// wiring between the pipelines and the workbook.
type Config struct {
	// Workbook configuration
	WorkbookPath    string
	SourceSheet     string
	FlatSheet       string
	SnapshotSheet   string
	AttendanceSheet string
	DeptEmailSheet  string

	// Control cells
	WatermarkCell  string   // on FlatSheet, holds the last processed timestamp
	SnapshotRange  string   // on SnapshotSheet, the audit result block
	TimestampCell  string   // on SnapshotSheet, the audit run timestamp
	ReferenceCells []string // on SnapshotSheet, 20 audit reference values
	WeeklyToCell   string   // on SnapshotSheet, comma-joined recipients
	WeeklyCcCell   string   // on SnapshotSheet, comma-joined cc recipients

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// SendGrid configuration
	SendGridAPIKey    string
	SendGridFromName  string
	SendGridFromEmail string

	// Department display labels, keyed by the internal department code
	// used in the attendance sheet.
	DeptLabels map[string]string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{}

	// Workbook configuration
	cfg.WorkbookPath = getEnv("WORKBOOK_PATH", "audit.xlsx")
	cfg.SourceSheet = getEnv("SOURCE_SHEET", "source_02")
	cfg.FlatSheet = getEnv("FLAT_SHEET", "flattern_audit")
	cfg.SnapshotSheet = getEnv("SNAPSHOT_SHEET", "last_audit")
	cfg.AttendanceSheet = getEnv("ATTENDANCE_SHEET", "Attendance")
	cfg.DeptEmailSheet = getEnv("DEPT_EMAIL_SHEET", "dept_emails")

	// Control cells
	cfg.WatermarkCell = getEnv("WATERMARK_CELL", "W1")
	cfg.SnapshotRange = getEnv("SNAPSHOT_RANGE", "A1:R3")
	cfg.TimestampCell = getEnv("TIMESTAMP_CELL", "A2")
	cfg.ReferenceCells = getEnvAsSlice("REFERENCE_CELLS", defaultReferenceCells())
	cfg.WeeklyToCell = getEnv("WEEKLY_TO_CELL", "T1")
	cfg.WeeklyCcCell = getEnv("WEEKLY_CC_CELL", "U1")

	// Database configuration
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "3306")
	cfg.DBUser = getEnv("DB_USER", "server")
	cfg.DBPassword = getEnv("DB_PASSWORD", "secret")
	cfg.DBName = getEnv("DB_NAME", "auditmail")

	// SendGrid configuration
	cfg.SendGridAPIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.SendGridFromName = getEnv("SENDGRID_FROM_NAME", "Audit Reports")
	cfg.SendGridFromEmail = getEnv("SENDGRID_FROM_EMAIL", "reports@example.com")

	cfg.DeptLabels = defaultDeptLabels()

	return cfg
}

// DeptLabel resolves the display label for a department code. Codes without
// a label pass through verbatim.
func (c *Config) DeptLabel(code string) string {
	if label, ok := c.DeptLabels[code]; ok {
		return label
	}
	return code
}

// defaultReferenceCells returns the 20 audit reference cells, T2 through T21
// on the snapshot sheet.
func defaultReferenceCells() []string {
	cells := make([]string, 0, 20)
	for row := 2; row <= 21; row++ {
		cells = append(cells, "T"+strconv.Itoa(row))
	}
	return cells
}

func defaultDeptLabels() map[string]string {
	return map[string]string{
		"ACC":   "Accounting",
		"ADM":   "Administration",
		"HR":    "Human Resources",
		"IT":    "Information Technology",
		"MKT":   "Marketing",
		"OPS":   "Operations",
		"PROD":  "Production",
		"QA":    "Quality Assurance",
		"SALES": "Sales",
		"WH":    "Warehouse",
	}
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsSlice gets a comma-separated environment variable as a slice,
// dropping empty parts.
func getEnvAsSlice(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
