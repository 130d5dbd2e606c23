package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

func TestAttendanceRepositoryList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "record_date", "status", "created_at", "updated_at"}).
		AddRow("a1", "s1", "2026-01-05", "S", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, student_id, to_char\\(record_date").
		WillReturnRows(rows)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-01-05", records[0].Date)
	assert.Equal(t, models.AttendanceStatusSick, records[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpsertCompositeKey(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("INSERT INTO attendance_records (.|\\n)*ON CONFLICT \\(student_id, record_date\\)").
		WithArgs(sqlmock.AnyArg(), "s1", "2026-01-05", "A", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := &models.AttendanceRecord{StudentID: "s1", Date: "2026-01-05", Status: models.AttendanceStatusAbsent}
	require.NoError(t, repo.Upsert(context.Background(), record))
	assert.NotEmpty(t, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryBulkUpsertReportsPerRecordOutcome(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("INSERT INTO attendance_records").
		WithArgs(sqlmock.AnyArg(), "s1", "2026-01-05", "H", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO attendance_records").
		WithArgs(sqlmock.AnyArg(), "ghost", "2026-01-05", "S", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("foreign key violation"))

	results, err := repo.BulkUpsert(context.Background(), []models.AttendanceRecord{
		{StudentID: "s1", Date: "2026-01-05", Status: models.AttendanceStatusPresent},
		{StudentID: "ghost", Date: "2026-01-05", Status: models.AttendanceStatusSick},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, models.MarkConfirmed, results[0].Outcome)
	assert.Equal(t, models.MarkFailed, results[1].Outcome)
	assert.Contains(t, results[1].Reason, "foreign key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryWipeTouchesOnlyAttendance(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("^DELETE FROM attendance_records$").
		WillReturnResult(sqlmock.NewResult(0, 42))

	require.NoError(t, repo.Wipe(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
