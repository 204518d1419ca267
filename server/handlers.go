package server

import (
	"net/http"

	"auditmail/attendance"
	"auditmail/flatten"
	"auditmail/sheets"
	"auditmail/weekly"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Handler wires the trigger endpoints to the pipelines.
type Handler struct {
	Flatten    *flatten.Service
	Weekly     *weekly.Service
	Attendance *attendance.Service
	Workbook   *sheets.Workbook
}

// FlattenAudit runs the row flattener and persists the workbook.
func (h *Handler) FlattenAudit(c *gin.Context) {
	result, err := h.Flatten.Run()
	if err != nil {
		log.Errorf("Flatten run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.Workbook.Save(); err != nil {
		log.Errorf("Workbook save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// WeeklyAudit runs the weekly snapshot mailer.
func (h *Handler) WeeklyAudit(c *gin.Context) {
	result, err := h.Weekly.Run()
	if err != nil {
		log.Errorf("Weekly audit run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// AttendanceReport runs the department attendance mailer.
func (h *Handler) AttendanceReport(c *gin.Context) {
	summary, err := h.Attendance.Run()
	if err != nil {
		log.Errorf("Attendance run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
