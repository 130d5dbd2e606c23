package memory

import (
	"context"
	"database/sql"
	"sort"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

// ClassStore is the in-memory counterpart of repository.ClassRepository.
type ClassStore struct {
	s *Store
}

// List returns every class ordered by name.
func (c *ClassStore) List(ctx context.Context) ([]models.Class, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	classes := make([]models.Class, 0, len(c.s.classes))
	for _, class := range c.s.classes {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

// Create stores a new class.
func (c *ClassStore) Create(ctx context.Context, class *models.Class) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	ensureID(&class.ID)
	stamp(&class.CreatedAt, &class.UpdatedAt)
	c.s.classes[class.ID] = *class
	return nil
}

// Update rewrites an existing class.
func (c *ClassStore) Update(ctx context.Context, class *models.Class) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	existing, ok := c.s.classes[class.ID]
	if !ok {
		return sql.ErrNoRows
	}
	class.CreatedAt = existing.CreatedAt
	stamp(&class.CreatedAt, &class.UpdatedAt)
	c.s.classes[class.ID] = *class
	return nil
}

// Delete removes a class and, mirroring the database cascade, its students,
// assignments and their dependent rows.
func (c *ClassStore) Delete(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.classes[id]; !ok {
		return sql.ErrNoRows
	}
	delete(c.s.classes, id)
	for sid, student := range c.s.students {
		if student.ClassID == id {
			delete(c.s.students, sid)
			c.s.deleteAttendanceForStudent(sid)
			c.s.deleteSubmissionsForStudent(sid)
		}
	}
	for aid, assignment := range c.s.assignments {
		if assignment.ClassID == id {
			delete(c.s.assignments, aid)
			c.s.deleteSubmissionsForAssignment(aid)
		}
	}
	return nil
}

// Upsert inserts or overwrites a class by id.
func (c *ClassStore) Upsert(ctx context.Context, class *models.Class) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	ensureID(&class.ID)
	if existing, ok := c.s.classes[class.ID]; ok {
		class.CreatedAt = existing.CreatedAt
	}
	stamp(&class.CreatedAt, &class.UpdatedAt)
	c.s.classes[class.ID] = *class
	return nil
}

// StudentStore is the in-memory counterpart of repository.StudentRepository.
type StudentStore struct {
	s *Store
}

// List returns every student ordered by name.
func (st *StudentStore) List(ctx context.Context) ([]models.Student, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	students := make([]models.Student, 0, len(st.s.students))
	for _, student := range st.s.students {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}

// Create stores a new student.
func (st *StudentStore) Create(ctx context.Context, student *models.Student) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	ensureID(&student.ID)
	stamp(&student.CreatedAt, &student.UpdatedAt)
	st.s.students[student.ID] = *student
	return nil
}

// Update rewrites an existing student.
func (st *StudentStore) Update(ctx context.Context, student *models.Student) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	existing, ok := st.s.students[student.ID]
	if !ok {
		return sql.ErrNoRows
	}
	student.CreatedAt = existing.CreatedAt
	stamp(&student.CreatedAt, &student.UpdatedAt)
	st.s.students[student.ID] = *student
	return nil
}

// Delete removes a student and its dependent rows.
func (st *StudentStore) Delete(ctx context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.students[id]; !ok {
		return sql.ErrNoRows
	}
	delete(st.s.students, id)
	st.s.deleteAttendanceForStudent(id)
	st.s.deleteSubmissionsForStudent(id)
	return nil
}

// Upsert inserts or overwrites a student by id.
func (st *StudentStore) Upsert(ctx context.Context, student *models.Student) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	ensureID(&student.ID)
	if existing, ok := st.s.students[student.ID]; ok {
		student.CreatedAt = existing.CreatedAt
	}
	stamp(&student.CreatedAt, &student.UpdatedAt)
	st.s.students[student.ID] = *student
	return nil
}

// AssignmentStore is the in-memory counterpart of repository.AssignmentRepository.
type AssignmentStore struct {
	s *Store
}

// List returns every assignment ordered by due date.
func (a *AssignmentStore) List(ctx context.Context) ([]models.Assignment, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	assignments := make([]models.Assignment, 0, len(a.s.assignments))
	for _, assignment := range a.s.assignments {
		assignments = append(assignments, assignment)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].DueDate < assignments[j].DueDate })
	return assignments, nil
}

// Create stores a new assignment.
func (a *AssignmentStore) Create(ctx context.Context, assignment *models.Assignment) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	ensureID(&assignment.ID)
	stamp(&assignment.CreatedAt, &assignment.UpdatedAt)
	a.s.assignments[assignment.ID] = *assignment
	return nil
}

// Update rewrites an existing assignment.
func (a *AssignmentStore) Update(ctx context.Context, assignment *models.Assignment) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	existing, ok := a.s.assignments[assignment.ID]
	if !ok {
		return sql.ErrNoRows
	}
	assignment.ClassID = existing.ClassID
	assignment.CreatedAt = existing.CreatedAt
	stamp(&assignment.CreatedAt, &assignment.UpdatedAt)
	a.s.assignments[assignment.ID] = *assignment
	return nil
}

// Delete removes an assignment and its submissions.
func (a *AssignmentStore) Delete(ctx context.Context, id string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.assignments[id]; !ok {
		return sql.ErrNoRows
	}
	delete(a.s.assignments, id)
	a.s.deleteSubmissionsForAssignment(id)
	return nil
}

// Upsert inserts or overwrites an assignment by id.
func (a *AssignmentStore) Upsert(ctx context.Context, assignment *models.Assignment) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	ensureID(&assignment.ID)
	if existing, ok := a.s.assignments[assignment.ID]; ok {
		assignment.CreatedAt = existing.CreatedAt
	}
	stamp(&assignment.CreatedAt, &assignment.UpdatedAt)
	a.s.assignments[assignment.ID] = *assignment
	return nil
}

// SubmissionStore is the in-memory counterpart of repository.SubmissionRepository.
type SubmissionStore struct {
	s *Store
}

// List returns every submission row.
func (su *SubmissionStore) List(ctx context.Context) ([]models.Submission, error) {
	su.s.mu.RLock()
	defer su.s.mu.RUnlock()
	submissions := make([]models.Submission, 0, len(su.s.submissions))
	for _, submission := range su.s.submissions {
		submissions = append(submissions, submission)
	}
	sort.Slice(submissions, func(i, j int) bool {
		if submissions[i].AssignmentID != submissions[j].AssignmentID {
			return submissions[i].AssignmentID < submissions[j].AssignmentID
		}
		return submissions[i].StudentID < submissions[j].StudentID
	})
	return submissions, nil
}

// Upsert inserts or updates a submission keyed by (assignment, student).
func (su *SubmissionStore) Upsert(ctx context.Context, submission *models.Submission) error {
	su.s.mu.Lock()
	defer su.s.mu.Unlock()
	key := submissionKey(submission.AssignmentID, submission.StudentID)
	if existing, ok := su.s.submissions[key]; ok {
		submission.ID = existing.ID
		submission.CreatedAt = existing.CreatedAt
	}
	ensureID(&submission.ID)
	stamp(&submission.CreatedAt, &submission.UpdatedAt)
	su.s.submissions[key] = *submission
	return nil
}

// AttendanceStore is the in-memory counterpart of repository.AttendanceRepository.
type AttendanceStore struct {
	s *Store
}

// List returns every attendance row.
func (at *AttendanceStore) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	at.s.mu.RLock()
	defer at.s.mu.RUnlock()
	records := make([]models.AttendanceRecord, 0, len(at.s.attendance))
	for _, record := range at.s.attendance {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].StudentID != records[j].StudentID {
			return records[i].StudentID < records[j].StudentID
		}
		return records[i].Date < records[j].Date
	})
	return records, nil
}

// Upsert inserts or updates one record keyed by (student, date).
func (at *AttendanceStore) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	at.s.mu.Lock()
	defer at.s.mu.Unlock()
	at.s.upsertAttendanceLocked(record)
	return nil
}

// BulkUpsert writes many records; in memory nothing can fail, so every
// outcome is confirmed.
func (at *AttendanceStore) BulkUpsert(ctx context.Context, records []models.AttendanceRecord) ([]models.AttendanceMarkResult, error) {
	at.s.mu.Lock()
	defer at.s.mu.Unlock()
	results := make([]models.AttendanceMarkResult, 0, len(records))
	for i := range records {
		at.s.upsertAttendanceLocked(&records[i])
		results = append(results, models.AttendanceMarkResult{
			StudentID: records[i].StudentID,
			Date:      records[i].Date,
			Outcome:   models.MarkConfirmed,
		})
	}
	return results, nil
}

// Wipe clears the attendance table only.
func (at *AttendanceStore) Wipe(ctx context.Context) error {
	at.s.mu.Lock()
	defer at.s.mu.Unlock()
	at.s.attendance = make(map[string]models.AttendanceRecord)
	return nil
}

// HolidayStore is the in-memory counterpart of repository.HolidayRepository.
type HolidayStore struct {
	s *Store
}

// List returns every holiday date ascending.
func (h *HolidayStore) List(ctx context.Context) ([]models.Holiday, error) {
	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	holidays := make([]models.Holiday, 0, len(h.s.holidays))
	for _, date := range sortedDates(h.s.holidays) {
		holidays = append(holidays, models.Holiday{Date: date})
	}
	return holidays, nil
}

// Insert marks a date as a holiday.
func (h *HolidayStore) Insert(ctx context.Context, date string) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	h.s.holidays[date] = struct{}{}
	return nil
}

// Delete unmarks a holiday.
func (h *HolidayStore) Delete(ctx context.Context, date string) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	delete(h.s.holidays, date)
	return nil
}

func (s *Store) upsertAttendanceLocked(record *models.AttendanceRecord) {
	key := attendanceKey(record.StudentID, record.Date)
	if existing, ok := s.attendance[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}
	ensureID(&record.ID)
	stamp(&record.CreatedAt, &record.UpdatedAt)
	s.attendance[key] = *record
}

func (s *Store) deleteSubmissionsForAssignment(assignmentID string) {
	for key, submission := range s.submissions {
		if submission.AssignmentID == assignmentID {
			delete(s.submissions, key)
		}
	}
}

func (s *Store) deleteSubmissionsForStudent(studentID string) {
	for key, submission := range s.submissions {
		if submission.StudentID == studentID {
			delete(s.submissions, key)
		}
	}
}

func (s *Store) deleteAttendanceForStudent(studentID string) {
	for key, record := range s.attendance {
		if record.StudentID == studentID {
			delete(s.attendance, key)
		}
	}
}
