package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

func TestSubmissionRepositoryList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "assignment_id", "student_id", "is_submitted", "score", "created_at", "updated_at"}).
		AddRow("sub1", "t1", "s1", true, "85", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, assignment_id, student_id, is_submitted, score").
		WillReturnRows(rows)

	submissions, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, "85", submissions[0].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepositoryUpsertCompositeKey(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	mock.ExpectExec("INSERT INTO submissions (.|\\n)*ON CONFLICT \\(assignment_id, student_id\\)").
		WithArgs(sqlmock.AnyArg(), "t1", "s1", true, "90", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	submission := &models.Submission{AssignmentID: "t1", StudentID: "s1", IsSubmitted: true, Score: "90"}
	require.NoError(t, repo.Upsert(context.Background(), submission))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryInsertIgnoresDuplicates(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectExec("INSERT INTO holidays (.|\\n)*DO NOTHING").
		WithArgs("2026-01-01").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Insert(context.Background(), "2026-01-01"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectExec("DELETE FROM holidays WHERE holiday_date").
		WithArgs("2026-01-01").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "2026-01-01"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
