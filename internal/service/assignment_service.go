package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/calendar"
	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type assignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) error
}

type submissionRepository interface {
	List(ctx context.Context) ([]models.Submission, error)
	Upsert(ctx context.Context, submission *models.Submission) error
}

// AssignmentService manages assignments and their submissions.
type AssignmentService struct {
	repo        assignmentRepository
	submissions submissionRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssignmentService constructs the service.
func NewAssignmentService(repo assignmentRepository, submissions submissionRepository, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, submissions: submissions, validator: validate, logger: logger}
}

// CreateAssignmentRequest is the admin form payload for a new assignment.
type CreateAssignmentRequest struct {
	ClassID     string `json:"class_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"required"`
}

// UpdateAssignmentRequest is the admin form payload for editing an assignment.
type UpdateAssignmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"required"`
}

// UpsertSubmissionRequest records whether a student turned in an assignment
// and an optional free-text score.
type UpsertSubmissionRequest struct {
	IsSubmitted bool    `json:"is_submitted"`
	Score       *string `json:"score"`
}

// Create adds an assignment to a class.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	dueDate, err := calendar.Parse(req.DueDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid due date")
	}
	assignment := &models.Assignment{
		ClassID:     req.ClassID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     calendar.Format(dueDate),
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// Update rewrites an assignment's editable fields.
func (s *AssignmentService) Update(ctx context.Context, id string, req UpdateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	dueDate, err := calendar.Parse(req.DueDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid due date")
	}
	assignment := &models.Assignment{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     calendar.Format(dueDate),
	}
	if err := s.repo.Update(ctx, assignment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	return assignment, nil
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}

// UpsertSubmission stores the submission cell for one (assignment, student)
// pair. Setting a non-empty score forces the submitted flag on.
func (s *AssignmentService) UpsertSubmission(ctx context.Context, assignmentID, studentID string, req UpsertSubmissionRequest) (*models.Submission, error) {
	if assignmentID == "" || studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignment and student are required")
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		IsSubmitted:  req.IsSubmitted,
	}
	if req.Score != nil {
		submission.Score = *req.Score
		if *req.Score != "" {
			submission.IsSubmitted = true
		}
	}
	if err := s.submissions.Upsert(ctx, submission); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save submission")
	}
	return submission, nil
}
