package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Help(c *gin.Context) {
	c.String(http.StatusOK, `
	Audit Mail Pipelines:
	POST /flatten_audit     - expand new wide audit rows into the flat sheet
	POST /weekly_audit      - email the audit snapshot (once per timestamp)
	POST /attendance_report - email per-department attendance tables
	`)
}
