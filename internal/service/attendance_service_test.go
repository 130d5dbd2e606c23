package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/calendar"
	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type mockAttendanceRepo struct {
	records     []models.AttendanceRecord
	upserted    []models.AttendanceRecord
	bulkBatches [][]models.AttendanceRecord
	wipeCalls   int
	upsertErr   error
	wipeErr     error
}

func (m *mockAttendanceRepo) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	return m.records, nil
}

func (m *mockAttendanceRepo) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, *record)
	return nil
}

func (m *mockAttendanceRepo) BulkUpsert(ctx context.Context, records []models.AttendanceRecord) ([]models.AttendanceMarkResult, error) {
	m.bulkBatches = append(m.bulkBatches, records)
	results := make([]models.AttendanceMarkResult, 0, len(records))
	for _, r := range records {
		results = append(results, models.AttendanceMarkResult{StudentID: r.StudentID, Date: r.Date, Outcome: models.MarkConfirmed})
	}
	return results, nil
}

func (m *mockAttendanceRepo) Wipe(ctx context.Context) error {
	if m.wipeErr != nil {
		return m.wipeErr
	}
	m.wipeCalls++
	return nil
}

type mockHolidayLister struct {
	holidays []models.Holiday
	err      error
}

func (m *mockHolidayLister) List(ctx context.Context) ([]models.Holiday, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.holidays, nil
}

func fixedClock(date string) func() time.Time {
	parsed, _ := calendar.Parse(date)
	return func() time.Time { return parsed }
}

func TestAttendanceServiceMark(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, &mockHolidayLister{}, nil, zap.NewNop())
	svc.now = fixedClock("2026-01-12")

	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{StudentID: "siswa-1", Date: "2026-01-09", Status: "s"})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusSick, record.Status)
	assert.Equal(t, "2026-01-09", record.Date)
	require.Len(t, repo.upserted, 1)
}

func TestAttendanceServiceMarkOnHolidayIsRejected(t *testing.T) {
	repo := &mockAttendanceRepo{}
	holidays := &mockHolidayLister{holidays: []models.Holiday{{Date: "2026-01-09"}}}
	svc := NewAttendanceService(repo, holidays, nil, zap.NewNop())
	svc.now = fixedClock("2026-01-12")

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{StudentID: "siswa-1", Date: "2026-01-09", Status: "H"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrHolidayLocked.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.upserted, "holiday writes must not reach the repository")
}

func TestAttendanceServiceMarkFutureDateIsRejected(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, &mockHolidayLister{}, nil, zap.NewNop())
	svc.now = fixedClock("2026-01-12")

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{StudentID: "siswa-1", Date: "2026-01-13", Status: "H"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFutureDate.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.upserted)
}

func TestAttendanceServiceMarkTodayIsAllowed(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, &mockHolidayLister{}, nil, zap.NewNop())
	svc.now = fixedClock("2026-01-12")

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{StudentID: "siswa-1", Date: "2026-01-12", Status: "A"})
	require.NoError(t, err)
}

func TestAttendanceServiceMarkInvalidStatus(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, &mockHolidayLister{}, nil, zap.NewNop())

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{StudentID: "siswa-1", Date: "2026-01-09", Status: "X"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAttendanceServiceBulkMarkMixedOutcomes(t *testing.T) {
	repo := &mockAttendanceRepo{}
	holidays := &mockHolidayLister{holidays: []models.Holiday{{Date: "2026-01-01"}}}
	svc := NewAttendanceService(repo, holidays, nil, zap.NewNop())
	svc.now = fixedClock("2026-01-12")

	results, err := svc.BulkMark(context.Background(), BulkMarkAttendanceRequest{Records: []MarkAttendanceRequest{
		{StudentID: "siswa-1", Date: "2026-01-09", Status: "H"},
		{StudentID: "siswa-2", Date: "2026-01-01", Status: "H"}, // holiday
		{StudentID: "siswa-3", Date: "2026-02-01", Status: "H"}, // future
		{StudentID: "siswa-4", Date: "bukan-tanggal", Status: "H"},
	}})
	require.NoError(t, err)
	require.Len(t, results, 4)

	byStudent := make(map[string]models.AttendanceMarkResult, len(results))
	for _, r := range results {
		byStudent[r.StudentID] = r
	}
	assert.Equal(t, models.MarkConfirmed, byStudent["siswa-1"].Outcome)
	assert.Equal(t, models.MarkFailed, byStudent["siswa-2"].Outcome)
	assert.Equal(t, models.MarkFailed, byStudent["siswa-3"].Outcome)
	assert.Equal(t, models.MarkFailed, byStudent["siswa-4"].Outcome)

	require.Len(t, repo.bulkBatches, 1)
	require.Len(t, repo.bulkBatches[0], 1, "only the valid record reaches the repository")
	assert.Equal(t, "siswa-1", repo.bulkBatches[0][0].StudentID)
}

func TestAttendanceServiceBulkMarkEmptyBatch(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, &mockHolidayLister{}, nil, zap.NewNop())

	_, err := svc.BulkMark(context.Background(), BulkMarkAttendanceRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAttendanceServiceWipeRequiresConfirmation(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, &mockHolidayLister{}, nil, zap.NewNop())

	err := svc.Wipe(context.Background(), "hapus")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConfirmationRequired.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.wipeCalls)

	require.NoError(t, svc.Wipe(context.Background(), WipeConfirmation))
	assert.Equal(t, 1, repo.wipeCalls)
}

func TestAttendanceServiceWipeRepoError(t *testing.T) {
	repo := &mockAttendanceRepo{wipeErr: errors.New("boom")}
	svc := NewAttendanceService(repo, &mockHolidayLister{}, nil, zap.NewNop())

	err := svc.Wipe(context.Background(), WipeConfirmation)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
