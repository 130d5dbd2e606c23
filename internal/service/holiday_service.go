package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/calendar"
	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type holidayRepository interface {
	List(ctx context.Context) ([]models.Holiday, error)
	Insert(ctx context.Context, date string) error
	Delete(ctx context.Context, date string) error
}

// HolidayService toggles the holiday flag of calendar dates.
type HolidayService struct {
	repo   holidayRepository
	logger *zap.Logger
}

// NewHolidayService constructs the service.
func NewHolidayService(repo holidayRepository, logger *zap.Logger) *HolidayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{repo: repo, logger: logger}
}

// List returns the holiday dates ascending.
func (s *HolidayService) List(ctx context.Context) ([]string, error) {
	holidays, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}
	dates := make([]string, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	return dates, nil
}

// Toggle marks or unmarks a date as a holiday. Both directions are
// idempotent: marking an existing holiday or unmarking a regular date is a
// no-op.
func (s *HolidayService) Toggle(ctx context.Context, rawDate string, makeHoliday bool) error {
	date, err := calendar.Parse(rawDate)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	canonical := calendar.Format(date)

	if makeHoliday {
		err = s.repo.Insert(ctx, canonical)
	} else {
		err = s.repo.Delete(ctx, canonical)
	}
	if err != nil {
		s.logger.Error("holiday toggle failed", zap.String("date", canonical), zap.Bool("make_holiday", makeHoliday), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update holiday")
	}
	return nil
}
