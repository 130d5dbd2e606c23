// Package memory provides the offline fallback store used when no database
// is configured. It keeps the full table set in process memory behind the
// same per-table method sets as the SQL repositories; nothing survives a
// restart.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

// Store holds all six tables. Sub-stores share the one lock, so cross-table
// operations such as snapshot import stay consistent.
type Store struct {
	mu          sync.RWMutex
	classes     map[string]models.Class
	students    map[string]models.Student
	assignments map[string]models.Assignment
	submissions map[string]models.Submission       // keyed assignmentID + "|" + studentID
	attendance  map[string]models.AttendanceRecord // keyed studentID + "|" + date
	holidays    map[string]struct{}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		classes:     make(map[string]models.Class),
		students:    make(map[string]models.Student),
		assignments: make(map[string]models.Assignment),
		submissions: make(map[string]models.Submission),
		attendance:  make(map[string]models.AttendanceRecord),
		holidays:    make(map[string]struct{}),
	}
}

// Classes returns the class table facade.
func (s *Store) Classes() *ClassStore { return &ClassStore{s: s} }

// Students returns the student table facade.
func (s *Store) Students() *StudentStore { return &StudentStore{s: s} }

// Assignments returns the assignment table facade.
func (s *Store) Assignments() *AssignmentStore { return &AssignmentStore{s: s} }

// Submissions returns the submission table facade.
func (s *Store) Submissions() *SubmissionStore { return &SubmissionStore{s: s} }

// Attendance returns the attendance table facade.
func (s *Store) Attendance() *AttendanceStore { return &AttendanceStore{s: s} }

// Holidays returns the holiday table facade.
func (s *Store) Holidays() *HolidayStore { return &HolidayStore{s: s} }

func submissionKey(assignmentID, studentID string) string {
	return assignmentID + "|" + studentID
}

func attendanceKey(studentID, date string) string {
	return studentID + "|" + date
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func stamp(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func sortedDates(set map[string]struct{}) []string {
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
