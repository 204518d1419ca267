package main

import (
	"flag"

	"auditmail/attendance"
	"auditmail/config"
	"auditmail/email"
	"auditmail/flatten"
	"auditmail/props"
	"auditmail/server"
	"auditmail/sheets"
	"auditmail/weekly"

	"github.com/apex/log"
)

func main() {
	flag.Parse()

	cfg := config.Load()

	workbook, err := sheets.Open(cfg.WorkbookPath)
	if err != nil {
		log.Fatalf("Failed to open workbook: %v", err)
	}
	defer workbook.Close()

	properties, err := props.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open property store: %v", err)
	}
	defer properties.Close()

	mailer := email.NewMailer(cfg)

	h := &server.Handler{
		Flatten:    flatten.NewService(cfg, workbook),
		Weekly:     weekly.NewService(cfg, workbook, mailer, properties),
		Attendance: attendance.NewService(cfg, workbook, mailer),
		Workbook:   workbook,
	}

	server.StartService(h)
}
