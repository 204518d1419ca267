// Package server exposes the report pipelines as HTTP trigger endpoints,
// replacing the spreadsheet menu items that used to launch them.
package server

import (
	"flag"
	"fmt"

	"auditmail/version"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const (
	EndPointHelp       = "/help"
	EndPointVersion    = "/version"
	EndPointFlatten    = "/flatten_audit"
	EndPointWeekly     = "/weekly_audit"
	EndPointAttendance = "/attendance_report"
)

var (
	serverPort = flag.Int("port", 8090, "The port used by the service.")
)

// StartService runs the trigger server until the process is stopped.
func StartService(h *Handler) {
	log.Info("Starting the service...")
	router := gin.Default()
	router.GET(EndPointVersion, func(c *gin.Context) {
		c.JSON(200, version.Get("auditmail"))
	})
	router.GET(EndPointHelp, Help)
	router.POST(EndPointFlatten, h.FlattenAudit)
	router.POST(EndPointWeekly, h.WeeklyAudit)
	router.POST(EndPointAttendance, h.AttendanceReport)

	router.Run(fmt.Sprintf(":%d", *serverPort))
	log.Warn("Finished the service. Should not ever being seen.")
}
