package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-absensi-api/internal/service"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
	"github.com/noah-isme/sma-absensi-api/pkg/response"
)

// HolidayHandler wires holiday toggling to HTTP routes.
type HolidayHandler struct {
	holidays *service.HolidayService
	dataset  *service.DatasetService
}

// NewHolidayHandler constructs a new HolidayHandler.
func NewHolidayHandler(holidays *service.HolidayService, dataset *service.DatasetService) *HolidayHandler {
	return &HolidayHandler{holidays: holidays, dataset: dataset}
}

// List godoc
// @Summary List holidays
// @Tags Holidays
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	dates, err := h.holidays.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dates, nil)
}

// Toggle godoc
// @Summary Toggle holiday
// @Description Mark or unmark a date as a holiday; both directions are idempotent
// @Tags Holidays
// @Accept json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param payload body handler.ToggleHolidayRequest true "Holiday flag"
// @Success 204
// @Router /holidays/{date} [put]
func (h *HolidayHandler) Toggle(c *gin.Context) {
	var req ToggleHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid holiday payload"))
		return
	}
	if err := h.holidays.Toggle(c.Request.Context(), c.Param("date"), req.IsHoliday); err != nil {
		response.Error(c, err)
		return
	}
	h.dataset.Invalidate(c.Request.Context())
	response.NoContent(c)
}

// ToggleHolidayRequest carries the desired holiday flag for a date.
type ToggleHolidayRequest struct {
	IsHoliday bool `json:"is_holiday"`
}
