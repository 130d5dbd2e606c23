package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-absensi-api/internal/service"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
	"github.com/noah-isme/sma-absensi-api/pkg/response"
)

// AttendanceHandler wires attendance writes to HTTP routes.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	dataset    *service.DatasetService
}

// NewAttendanceHandler constructs a new AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService, dataset *service.DatasetService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, dataset: dataset}
}

// Mark godoc
// @Summary Mark attendance
// @Description Store one attendance status; holidays and future dates are rejected
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /attendance [put]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}
	record, err := h.attendance.Mark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dataset.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, record, nil)
}

// BulkMark godoc
// @Summary Mark attendance in bulk
// @Description Store a batch of attendance edits and return the per-record outcome
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.BulkMarkAttendanceRequest true "Batch payload"
// @Success 200 {object} response.Envelope
// @Router /attendance/bulk [post]
func (h *AttendanceHandler) BulkMark(c *gin.Context) {
	var req service.BulkMarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk attendance payload"))
		return
	}
	results, err := h.attendance.BulkMark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dataset.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, results, nil)
}

// Wipe godoc
// @Summary Wipe attendance
// @Description Irreversibly clear the attendance table; requires the confirmation phrase. Other tables are untouched.
// @Tags Attendance
// @Accept json
// @Param payload body handler.WipeRequest true "Confirmation payload"
// @Success 204
// @Failure 412 {object} response.Envelope
// @Router /attendance [delete]
func (h *AttendanceHandler) Wipe(c *gin.Context) {
	var req WipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrConfirmationRequired)
		return
	}
	if err := h.attendance.Wipe(c.Request.Context(), req.Confirmation); err != nil {
		response.Error(c, err)
		return
	}
	h.dataset.Invalidate(c.Request.Context())
	response.NoContent(c)
}

// WipeRequest carries the typed confirmation phrase for the wipe action.
type WipeRequest struct {
	Confirmation string `json:"confirmation"`
}
