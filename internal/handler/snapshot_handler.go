package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	"github.com/noah-isme/sma-absensi-api/internal/service"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
	"github.com/noah-isme/sma-absensi-api/pkg/response"
)

// SnapshotHandler wires backup export and import to HTTP routes.
type SnapshotHandler struct {
	snapshots *service.SnapshotService
	dataset   *service.DatasetService
}

// NewSnapshotHandler constructs a new SnapshotHandler.
func NewSnapshotHandler(snapshots *service.SnapshotService, dataset *service.DatasetService) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, dataset: dataset}
}

// Export godoc
// @Summary Export backup
// @Description Dump every table into one JSON document
// @Tags Snapshot
// @Produce json
// @Param download query bool false "Serve as a file attachment"
// @Success 200 {object} models.Snapshot
// @Router /snapshot [get]
func (h *SnapshotHandler) Export(c *gin.Context) {
	snapshot, err := h.snapshots.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if c.Query("download") == "true" {
		filename := fmt.Sprintf("backup-%s.json", snapshot.Metadata.ExportDate)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
		c.Header("Cache-Control", "no-store")
	}
	c.JSON(http.StatusOK, snapshot)
}

// Import godoc
// @Summary Import backup
// @Description Upsert every row of a backup document; import never deletes
// @Tags Snapshot
// @Accept json
// @Success 204
// @Router /snapshot [post]
func (h *SnapshotHandler) Import(c *gin.Context) {
	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid backup document"))
		return
	}
	if err := h.snapshots.Import(c.Request.Context(), snapshot); err != nil {
		response.Error(c, err)
		return
	}
	h.dataset.Invalidate(c.Request.Context())
	response.NoContent(c)
}
