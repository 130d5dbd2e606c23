package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context) ([]models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}

// ClassService manages the class roster.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs the service.
func NewClassService(repo classRepository, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, validator: validate, logger: logger}
}

// CreateClassRequest is the admin form payload for a new class.
type CreateClassRequest struct {
	Name     string `json:"name" validate:"required"`
	Schedule []int  `json:"schedule" validate:"omitempty,dive,min=1,max=5"`
}

// UpdateClassRequest is the admin form payload for editing a class.
type UpdateClassRequest struct {
	Name     string `json:"name" validate:"required"`
	Schedule []int  `json:"schedule" validate:"omitempty,dive,min=1,max=5"`
}

// List returns every class ordered by name.
func (s *ClassService) List(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}
	return classes, nil
}

// Create adds a class.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	class := &models.Class{Name: req.Name, Schedule: scheduleArray(req.Schedule)}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// Update renames a class or changes its teaching days.
func (s *ClassService) Update(ctx context.Context, id string, req UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	class := &models.Class{ID: id, Name: req.Name, Schedule: scheduleArray(req.Schedule)}
	if err := s.repo.Update(ctx, class); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class")
	}
	return class, nil
}

// Delete removes a class; cascading deletes are the database's concern.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	return nil
}

// scheduleArray stores the normalized weekday mask.
func scheduleArray(days []int) pq.Int64Array {
	raw := make([]int64, 0, len(days))
	for _, d := range days {
		raw = append(raw, int64(d))
	}
	normalized := models.NormalizeSchedule(raw)
	arr := make(pq.Int64Array, 0, len(normalized))
	for _, d := range normalized {
		arr = append(arr, int64(d))
	}
	return arr
}
