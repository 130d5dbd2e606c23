package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

type recordingWriters struct {
	classes     []models.Class
	students    []models.Student
	assignments []models.Assignment
	submissions []models.Submission
	attendance  []models.AttendanceRecord
	holidays    []string
}

func (w *recordingWriters) writers() SnapshotWriters {
	return SnapshotWriters{
		Classes:     classUpserterFunc(func(ctx context.Context, c *models.Class) error { w.classes = append(w.classes, *c); return nil }),
		Students:    studentUpserterFunc(func(ctx context.Context, s *models.Student) error { w.students = append(w.students, *s); return nil }),
		Assignments: assignmentUpserterFunc(func(ctx context.Context, a *models.Assignment) error { w.assignments = append(w.assignments, *a); return nil }),
		Submissions: submissionUpserterFunc(func(ctx context.Context, s *models.Submission) error { w.submissions = append(w.submissions, *s); return nil }),
		Attendance:  attendanceUpserterFunc(func(ctx context.Context, r *models.AttendanceRecord) error { w.attendance = append(w.attendance, *r); return nil }),
		Holidays:    holidayInserterFunc(func(ctx context.Context, d string) error { w.holidays = append(w.holidays, d); return nil }),
	}
}

type classUpserterFunc func(ctx context.Context, class *models.Class) error

func (f classUpserterFunc) Upsert(ctx context.Context, class *models.Class) error {
	return f(ctx, class)
}

type studentUpserterFunc func(ctx context.Context, student *models.Student) error

func (f studentUpserterFunc) Upsert(ctx context.Context, student *models.Student) error {
	return f(ctx, student)
}

type assignmentUpserterFunc func(ctx context.Context, assignment *models.Assignment) error

func (f assignmentUpserterFunc) Upsert(ctx context.Context, assignment *models.Assignment) error {
	return f(ctx, assignment)
}

type submissionUpserterFunc func(ctx context.Context, submission *models.Submission) error

func (f submissionUpserterFunc) Upsert(ctx context.Context, submission *models.Submission) error {
	return f(ctx, submission)
}

type attendanceUpserterFunc func(ctx context.Context, record *models.AttendanceRecord) error

func (f attendanceUpserterFunc) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	return f(ctx, record)
}

type holidayInserterFunc func(ctx context.Context, date string) error

func (f holidayInserterFunc) Insert(ctx context.Context, date string) error {
	return f(ctx, date)
}

func snapshotReaders() SnapshotReaders {
	return SnapshotReaders{
		Classes:     &stubClassLister{classes: []models.Class{{ID: "kelas-7a", Name: "Kelas 7A"}}},
		Students:    &stubStudentLister{students: []models.Student{{ID: "siswa-1", ClassID: "kelas-7a", Name: "Aisyah"}}},
		Assignments: &stubAssignmentLister{},
		Submissions: &stubSubmissionLister{},
		Attendance:  &stubAttendanceLister{records: []models.AttendanceRecord{{StudentID: "siswa-1", Date: "2026-01-09", Status: models.AttendanceStatusSick}}},
		Holidays:    &mockHolidayLister{holidays: []models.Holiday{{Date: "2026-01-01"}}},
	}
}

func TestSnapshotServiceExport(t *testing.T) {
	svc := NewSnapshotService(snapshotReaders(), SnapshotWriters{}, "SMP Negeri 1", zap.NewNop())
	svc.now = fixedClock("2026-01-12")

	snapshot, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-01-12", snapshot.Metadata.ExportDate)
	assert.Equal(t, "SMP Negeri 1", snapshot.Metadata.School)
	assert.Len(t, snapshot.Data.Classes, 1)
	assert.Len(t, snapshot.Data.AttendanceRecords, 1)
	assert.Len(t, snapshot.Data.Holidays, 1)
}

func TestSnapshotServiceImportUpsertsEveryRow(t *testing.T) {
	sink := &recordingWriters{}
	svc := NewSnapshotService(SnapshotReaders{}, sink.writers(), "SMP Negeri 1", zap.NewNop())

	err := svc.Import(context.Background(), models.Snapshot{Data: models.SnapshotData{
		Classes:           []models.Class{{ID: "kelas-7a", Name: "Kelas 7A"}},
		Students:          []models.Student{{ID: "siswa-1", ClassID: "kelas-7a", Name: "Aisyah"}},
		AttendanceRecords: []models.AttendanceRecord{{StudentID: "siswa-1", Date: "2026-01-09", Status: models.AttendanceStatusExcused}},
		Holidays:          []models.Holiday{{Date: "2026-01-01"}},
	}})
	require.NoError(t, err)
	assert.Len(t, sink.classes, 1)
	assert.Len(t, sink.students, 1)
	assert.Empty(t, sink.assignments, "absent tables are untouched")
	assert.Empty(t, sink.submissions)
	assert.Len(t, sink.attendance, 1)
	assert.Equal(t, []string{"2026-01-01"}, sink.holidays)
}

func TestSnapshotServiceRoundTrip(t *testing.T) {
	sink := &recordingWriters{}
	exporter := NewSnapshotService(snapshotReaders(), SnapshotWriters{}, "SMP Negeri 1", zap.NewNop())
	importer := NewSnapshotService(SnapshotReaders{}, sink.writers(), "SMP Negeri 1", zap.NewNop())

	snapshot, err := exporter.Export(context.Background())
	require.NoError(t, err)
	require.NoError(t, importer.Import(context.Background(), *snapshot))

	assert.Equal(t, snapshot.Data.Classes, sink.classes)
	assert.Equal(t, snapshot.Data.Students, sink.students)
	assert.Equal(t, snapshot.Data.AttendanceRecords, sink.attendance)
}
