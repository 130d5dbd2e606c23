package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/calendar"
	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type attendanceRepository interface {
	List(ctx context.Context) ([]models.AttendanceRecord, error)
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
	BulkUpsert(ctx context.Context, records []models.AttendanceRecord) ([]models.AttendanceMarkResult, error)
	Wipe(ctx context.Context) error
}

type holidayLister interface {
	List(ctx context.Context) ([]models.Holiday, error)
}

// WipeConfirmation is the phrase a caller must supply before the attendance
// table is cleared. The action is irreversible.
const WipeConfirmation = "HAPUS SEMUA ABSENSI"

// AttendanceService guards and coordinates attendance writes. Holidays and
// future dates are read-only; every bulk edit gets an explicit per-item
// outcome.
type AttendanceService struct {
	repo      attendanceRepository
	holidays  holidayLister
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the service.
func NewAttendanceService(repo attendanceRepository, holidays holidayLister, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AttendanceService{repo: repo, holidays: holidays, validator: validate, logger: logger, now: time.Now}
	registerAttendanceStatusValidation(svc.validator)
	return svc
}

func registerAttendanceStatusValidation(v *validator.Validate) {
	// Best effort; re-registering the same tag is harmless.
	_ = v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(strings.ToUpper(fl.Field().String())).Valid()
	})
}

// MarkAttendanceRequest is the payload for a single attendance edit.
type MarkAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Date      string `json:"record_date" validate:"required"`
	Status    string `json:"status" validate:"required,attendance_status"`
}

// BulkMarkAttendanceRequest batches pending local edits into one write.
type BulkMarkAttendanceRequest struct {
	Records []MarkAttendanceRequest `json:"records" validate:"required,min=1,dive"`
}

// Mark validates and stores one attendance edit.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	date, err := s.guardDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	record := &models.AttendanceRecord{
		StudentID: req.StudentID,
		Date:      calendar.Format(date),
		Status:    models.AttendanceStatus(strings.ToUpper(req.Status)),
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		s.logger.Error("attendance upsert failed", zap.String("student_id", req.StudentID), zap.String("date", req.Date), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}
	return record, nil
}

// BulkMark stores a batch of edits. Records on holiday or future dates are
// rejected up front and reported failed; the rest are written best-effort
// with their individual outcomes.
func (s *AttendanceService) BulkMark(ctx context.Context, req BulkMarkAttendanceRequest) ([]models.AttendanceMarkResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk attendance payload")
	}

	holidaySet, err := s.holidaySet(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]models.AttendanceMarkResult, 0, len(req.Records))
	writable := make([]models.AttendanceRecord, 0, len(req.Records))
	for _, item := range req.Records {
		date, err := calendar.Parse(item.Date)
		switch {
		case err != nil:
			results = append(results, models.AttendanceMarkResult{StudentID: item.StudentID, Date: item.Date, Outcome: models.MarkFailed, Reason: "invalid date"})
		case holidaySet.Contains(calendar.Format(date)):
			results = append(results, models.AttendanceMarkResult{StudentID: item.StudentID, Date: item.Date, Outcome: models.MarkFailed, Reason: appErrors.ErrHolidayLocked.Message})
		case calendar.IsFuture(date, s.now()):
			results = append(results, models.AttendanceMarkResult{StudentID: item.StudentID, Date: item.Date, Outcome: models.MarkFailed, Reason: appErrors.ErrFutureDate.Message})
		default:
			writable = append(writable, models.AttendanceRecord{
				StudentID: item.StudentID,
				Date:      calendar.Format(date),
				Status:    models.AttendanceStatus(strings.ToUpper(item.Status)),
			})
		}
	}

	written, err := s.repo.BulkUpsert(ctx, writable)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance batch")
	}
	return append(results, written...), nil
}

// Wipe irreversibly clears the attendance table. Classes, students,
// assignments, submissions and holidays are never touched by this action.
func (s *AttendanceService) Wipe(ctx context.Context, confirmation string) error {
	if confirmation != WipeConfirmation {
		return appErrors.ErrConfirmationRequired
	}
	if err := s.repo.Wipe(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to wipe attendance")
	}
	s.logger.Info("attendance table wiped")
	return nil
}

func (s *AttendanceService) guardDate(ctx context.Context, raw string) (time.Time, error) {
	date, err := calendar.Parse(raw)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	if calendar.IsFuture(date, s.now()) {
		return time.Time{}, appErrors.ErrFutureDate
	}
	holidaySet, err := s.holidaySet(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if holidaySet.Contains(calendar.Format(date)) {
		return time.Time{}, appErrors.ErrHolidayLocked
	}
	return date, nil
}

func (s *AttendanceService) holidaySet(ctx context.Context) (models.HolidaySet, error) {
	holidays, err := s.holidays.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}
	return models.NewHolidaySet(holidays), nil
}
