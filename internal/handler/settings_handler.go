package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	"github.com/noah-isme/sma-absensi-api/pkg/config"
	"github.com/noah-isme/sma-absensi-api/pkg/response"
)

// SettingsHandler exposes the public application settings the SPA reads at
// startup.
type SettingsHandler struct {
	settings models.Settings
}

// NewSettingsHandler derives the settings payload from configuration.
func NewSettingsHandler(cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{settings: models.Settings{
		SchoolName:       cfg.School.Name,
		AcademicYear:     cfg.School.AcademicYear,
		SemesterLabel:    cfg.School.SemesterLabel,
		ReportYear:       cfg.Reports.ReportYear,
		ReportStartMonth: cfg.Reports.StartMonth,
		DefaultSchedule:  cfg.Dataset.DefaultSchedule,
		WriteDebounceMS:  cfg.Dataset.WriteDebounce.Milliseconds(),
		OfflineMode:      !cfg.Database.Configured(),
	}}
}

// Get godoc
// @Summary Application settings
// @Description School identity, reporting calendar, default schedule and write-debounce hint
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.settings, nil)
}
