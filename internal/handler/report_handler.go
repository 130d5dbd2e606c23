package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-absensi-api/internal/service"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
	"github.com/noah-isme/sma-absensi-api/pkg/response"
)

// ReportHandler serves printable attendance matrices and score recaps in
// JSON, CSV or PDF form.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs a new ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Attendance godoc
// @Summary Attendance report
// @Description Build the attendance matrix for a class over a daily, weekly, monthly or semester period
// @Tags Reports
// @Produce json
// @Param class_id query string true "Class ID"
// @Param scope query string true "daily|weekly|monthly|semester"
// @Param date query string false "Base date (YYYY-MM-DD) for daily/weekly"
// @Param month query int false "Month 1-12 for monthly"
// @Param format query string false "json|csv|pdf (default json)"
// @Success 200 {object} response.Envelope
// @Router /reports/attendance [get]
func (h *ReportHandler) Attendance(c *gin.Context) {
	req := service.AttendanceReportRequest{
		ClassID: c.Query("class_id"),
		Scope:   c.Query("scope"),
		Date:    c.Query("date"),
	}
	if month := c.Query("month"); month != "" {
		parsed, err := strconv.Atoi(month)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month must be a number"))
			return
		}
		req.Month = parsed
	}

	report, err := h.reports.BuildAttendanceReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch strings.ToLower(c.DefaultQuery("format", "json")) {
	case "csv":
		raw, err := h.reports.RenderAttendanceCSV(report)
		if err != nil {
			response.Error(c, err)
			return
		}
		serveDownload(c, raw, "text/csv", fmt.Sprintf("absensi-%s-%s.csv", req.ClassID, report.Scope))
	case "pdf":
		raw, err := h.reports.RenderAttendancePDF(report)
		if err != nil {
			response.Error(c, err)
			return
		}
		serveDownload(c, raw, "application/pdf", fmt.Sprintf("absensi-%s-%s.pdf", req.ClassID, report.Scope))
	default:
		response.JSON(c, http.StatusOK, report, nil)
	}
}

// Assignments godoc
// @Summary Assignment score recap
// @Description Build the per-class score table, one row per student and one column per assignment
// @Tags Reports
// @Produce json
// @Param class_id query string true "Class ID"
// @Param format query string false "json|csv|pdf (default json)"
// @Success 200 {object} response.Envelope
// @Router /reports/assignments [get]
func (h *ReportHandler) Assignments(c *gin.Context) {
	classID := c.Query("class_id")
	recap, err := h.reports.BuildAssignmentRecap(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch strings.ToLower(c.DefaultQuery("format", "json")) {
	case "csv":
		raw, err := h.reports.RenderRecapCSV(recap)
		if err != nil {
			response.Error(c, err)
			return
		}
		serveDownload(c, raw, "text/csv", fmt.Sprintf("nilai-%s.csv", classID))
	case "pdf":
		raw, err := h.reports.RenderRecapPDF(recap)
		if err != nil {
			response.Error(c, err)
			return
		}
		serveDownload(c, raw, "application/pdf", fmt.Sprintf("nilai-%s.pdf", classID))
	default:
		response.JSON(c, http.StatusOK, recap, nil)
	}
}

func serveDownload(c *gin.Context, raw []byte, mimeType, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, mimeType, raw)
}
