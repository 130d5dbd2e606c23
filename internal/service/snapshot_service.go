package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/calendar"
	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type classUpserter interface {
	Upsert(ctx context.Context, class *models.Class) error
}

type studentUpserter interface {
	Upsert(ctx context.Context, student *models.Student) error
}

type assignmentUpserter interface {
	Upsert(ctx context.Context, assignment *models.Assignment) error
}

type submissionUpserter interface {
	Upsert(ctx context.Context, submission *models.Submission) error
}

type attendanceUpserter interface {
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
}

type holidayInserter interface {
	Insert(ctx context.Context, date string) error
}

// SnapshotReaders bundles the fetch-all side of all six tables.
type SnapshotReaders struct {
	Classes     classLister
	Students    studentLister
	Assignments assignmentLister
	Submissions submissionLister
	Attendance  attendanceLister
	Holidays    holidayLister
}

// SnapshotWriters bundles the upsert side of all six tables.
type SnapshotWriters struct {
	Classes     classUpserter
	Students    studentUpserter
	Assignments assignmentUpserter
	Submissions submissionUpserter
	Attendance  attendanceUpserter
	Holidays    holidayInserter
}

// SnapshotService exports and imports the full table set as one backup
// document.
type SnapshotService struct {
	readers SnapshotReaders
	writers SnapshotWriters
	school  string
	logger  *zap.Logger
	now     func() time.Time
}

// NewSnapshotService constructs the service.
func NewSnapshotService(readers SnapshotReaders, writers SnapshotWriters, school string, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{readers: readers, writers: writers, school: school, logger: logger, now: time.Now}
}

// Export dumps every row of every table.
func (s *SnapshotService) Export(ctx context.Context) (*models.Snapshot, error) {
	classes, err := s.readers.Classes.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export classes")
	}
	students, err := s.readers.Students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export students")
	}
	assignments, err := s.readers.Assignments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export assignments")
	}
	submissions, err := s.readers.Submissions.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export submissions")
	}
	attendance, err := s.readers.Attendance.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export attendance")
	}
	holidays, err := s.readers.Holidays.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export holidays")
	}

	return &models.Snapshot{
		Metadata: models.SnapshotMetadata{
			ExportDate: calendar.Format(s.now()),
			School:     s.school,
		},
		Data: models.SnapshotData{
			Classes:           classes,
			Students:          students,
			Assignments:       assignments,
			Submissions:       submissions,
			AttendanceRecords: attendance,
			Holidays:          holidays,
		},
	}, nil
}

// Import upserts each non-empty table from the document. Tables absent from
// the document, or present but empty, are left untouched; import never
// deletes.
func (s *SnapshotService) Import(ctx context.Context, snapshot models.Snapshot) error {
	for i := range snapshot.Data.Classes {
		if err := s.writers.Classes.Upsert(ctx, &snapshot.Data.Classes[i]); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import classes")
		}
	}
	for i := range snapshot.Data.Students {
		if err := s.writers.Students.Upsert(ctx, &snapshot.Data.Students[i]); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import students")
		}
	}
	for i := range snapshot.Data.Assignments {
		if err := s.writers.Assignments.Upsert(ctx, &snapshot.Data.Assignments[i]); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import assignments")
		}
	}
	for i := range snapshot.Data.Submissions {
		if err := s.writers.Submissions.Upsert(ctx, &snapshot.Data.Submissions[i]); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import submissions")
		}
	}
	for i := range snapshot.Data.AttendanceRecords {
		if err := s.writers.Attendance.Upsert(ctx, &snapshot.Data.AttendanceRecords[i]); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import attendance")
		}
	}
	for i := range snapshot.Data.Holidays {
		if err := s.writers.Holidays.Insert(ctx, snapshot.Data.Holidays[i].Date); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import holidays")
		}
	}

	s.logger.Info("snapshot imported",
		zap.Int("classes", len(snapshot.Data.Classes)),
		zap.Int("students", len(snapshot.Data.Students)),
		zap.Int("assignments", len(snapshot.Data.Assignments)),
		zap.Int("submissions", len(snapshot.Data.Submissions)),
		zap.Int("attendance_records", len(snapshot.Data.AttendanceRecords)),
		zap.Int("holidays", len(snapshot.Data.Holidays)),
	)
	return nil
}
