package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type classLister interface {
	List(ctx context.Context) ([]models.Class, error)
}

type studentLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

type assignmentLister interface {
	List(ctx context.Context) ([]models.Assignment, error)
}

type submissionLister interface {
	List(ctx context.Context) ([]models.Submission, error)
}

type attendanceLister interface {
	List(ctx context.Context) ([]models.AttendanceRecord, error)
}

const datasetCacheKey = "absensi:dataset"

// DatasetService rebuilds the nested view model from the six flat tables.
// The SPA re-fetches the whole dataset after writes, so the assembled result
// is cached in Redis (when available) and invalidated by every mutation.
type DatasetService struct {
	classes     classLister
	students    studentLister
	assignments assignmentLister
	submissions submissionLister
	attendance  attendanceLister
	holidays    holidayLister

	cache           *redis.Client
	cacheTTL        time.Duration
	defaultSchedule []int
	metrics         *MetricsService
	logger          *zap.Logger
}

// NewDatasetService constructs the service. cache and metrics may be nil.
func NewDatasetService(
	classes classLister,
	students studentLister,
	assignments assignmentLister,
	submissions submissionLister,
	attendance attendanceLister,
	holidays holidayLister,
	cache *redis.Client,
	cacheTTL time.Duration,
	defaultSchedule []int,
	metrics *MetricsService,
	logger *zap.Logger,
) *DatasetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetService{
		classes:         classes,
		students:        students,
		assignments:     assignments,
		submissions:     submissions,
		attendance:      attendance,
		holidays:        holidays,
		cache:           cache,
		cacheTTL:        cacheTTL,
		defaultSchedule: defaultSchedule,
		metrics:         metrics,
		logger:          logger,
	}
}

// Fetch returns the assembled dataset, via cache when possible.
func (s *DatasetService) Fetch(ctx context.Context) (*models.Dataset, error) {
	if s.cache != nil {
		started := time.Now()
		raw, err := s.cache.Get(ctx, datasetCacheKey).Bytes()
		if err == nil {
			var cached models.Dataset
			if err := json.Unmarshal(raw, &cached); err == nil {
				s.metrics.RecordCacheOperation(true, time.Since(started))
				return &cached, nil
			}
		}
		s.metrics.RecordCacheOperation(false, time.Since(started))
	}

	dataset, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(dataset); err == nil {
			started := time.Now()
			if err := s.cache.Set(ctx, datasetCacheKey, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("dataset cache write failed", zap.Error(err))
			}
			s.metrics.ObserveCacheWrite(time.Since(started))
		}
	}
	return dataset, nil
}

// Invalidate drops the cached dataset after a write.
func (s *DatasetService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, datasetCacheKey).Err(); err != nil {
		s.logger.Warn("dataset cache invalidation failed", zap.Error(err))
	}
}

func (s *DatasetService) load(ctx context.Context) (*models.Dataset, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	submissions, err := s.submissions.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}
	attendance, err := s.attendance.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	holidays, err := s.holidays.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}

	holidayDates := make([]string, 0, len(holidays))
	for _, h := range holidays {
		holidayDates = append(holidayDates, h.Date)
	}

	return &models.Dataset{
		Classes:    AssembleClasses(classes, students, assignments, submissions, s.defaultSchedule),
		Attendance: GroupAttendance(attendance),
		Holidays:   holidayDates,
	}, nil
}

// AssembleClasses nests flat table rows into the view model. Every
// assignment's submissions map is dense over its class roster: students
// without a stored row get the not-submitted default. Classes with no
// schedule inherit the configured default mask.
func AssembleClasses(classes []models.Class, students []models.Student, assignments []models.Assignment, submissions []models.Submission, defaultSchedule []int) []models.ClassData {
	submissionsByAssignment := make(map[string]map[string]models.SubmissionData, len(assignments))
	for _, submission := range submissions {
		byStudent, ok := submissionsByAssignment[submission.AssignmentID]
		if !ok {
			byStudent = make(map[string]models.SubmissionData)
			submissionsByAssignment[submission.AssignmentID] = byStudent
		}
		byStudent[submission.StudentID] = models.SubmissionData{IsSubmitted: submission.IsSubmitted, Score: submission.Score}
	}

	result := make([]models.ClassData, 0, len(classes))
	for _, class := range classes {
		data := models.ClassData{Class: class, Students: []models.Student{}, Assignments: []models.AssignmentData{}}
		if len(data.ScheduleDays()) == 0 {
			data.Schedule = scheduleArray(defaultSchedule)
		}
		for _, student := range students {
			if student.ClassID == class.ID {
				data.Students = append(data.Students, student)
			}
		}
		for _, assignment := range assignments {
			if assignment.ClassID != class.ID {
				continue
			}
			stored := submissionsByAssignment[assignment.ID]
			cells := make(map[string]models.SubmissionData, len(data.Students))
			for _, student := range data.Students {
				if cell, ok := stored[student.ID]; ok {
					cells[student.ID] = cell
				} else {
					cells[student.ID] = models.SubmissionData{IsSubmitted: false, Score: ""}
				}
			}
			data.Assignments = append(data.Assignments, models.AssignmentData{Assignment: assignment, Submissions: cells})
		}
		result = append(result, data)
	}
	return result
}

// GroupAttendance nests flat attendance rows by student then date.
func GroupAttendance(records []models.AttendanceRecord) models.AttendanceMap {
	grouped := make(models.AttendanceMap)
	for _, record := range records {
		grouped.Set(record.StudentID, record.Date, record.Status)
	}
	return grouped
}
