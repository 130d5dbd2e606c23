package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-absensi-api/internal/service"
	"github.com/noah-isme/sma-absensi-api/pkg/response"
)

// DatasetHandler serves the assembled view model.
type DatasetHandler struct {
	dataset *service.DatasetService
}

// NewDatasetHandler constructs a new DatasetHandler.
func NewDatasetHandler(dataset *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{dataset: dataset}
}

// Get godoc
// @Summary Fetch the full dataset
// @Description Return every class with roster, assignments and dense submission maps, plus the attendance map and holidays
// @Tags Dataset
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dataset [get]
func (h *DatasetHandler) Get(c *gin.Context) {
	dataset, err := h.dataset.Fetch(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dataset, nil)
}
