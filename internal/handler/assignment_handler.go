package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-absensi-api/internal/service"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
	"github.com/noah-isme/sma-absensi-api/pkg/response"
)

// AssignmentHandler wires assignment and submission management to HTTP
// routes.
type AssignmentHandler struct {
	assignments *service.AssignmentService
	dataset     *service.DatasetService
}

// NewAssignmentHandler constructs a new AssignmentHandler.
func NewAssignmentHandler(assignments *service.AssignmentService, dataset *service.DatasetService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, dataset: dataset}
}

// Create godoc
// @Summary Create assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.assignments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dataset.Invalidate(c.Request.Context())
	response.Created(c, assignment)
}

// Update godoc
// @Summary Update assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.UpdateAssignmentRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req service.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.assignments.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dataset.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, assignment, nil)
}

// Delete godoc
// @Summary Delete assignment
// @Tags Assignments
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.dataset.Invalidate(c.Request.Context())
	response.NoContent(c)
}

// UpsertSubmission godoc
// @Summary Record a submission
// @Description Store the submitted flag and optional free-text score for one student
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param studentId path string true "Student ID"
// @Param payload body service.UpsertSubmissionRequest true "Submission payload"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id}/submissions/{studentId} [put]
func (h *AssignmentHandler) UpsertSubmission(c *gin.Context) {
	var req service.UpsertSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}
	submission, err := h.assignments.UpsertSubmission(c.Request.Context(), c.Param("id"), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dataset.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, submission, nil)
}
