package models

import "time"

// AttendanceStatus is the daily status for a student.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "H"
	AttendanceStatusSick    AttendanceStatus = "S"
	AttendanceStatusExcused AttendanceStatus = "I"
	AttendanceStatusAbsent  AttendanceStatus = "A"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusSick, AttendanceStatusExcused, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a single stored attendance row. Date is always the
// canonical YYYY-MM-DD form; the (student_id, record_date) pair is unique.
type AttendanceRecord struct {
	ID        string           `db:"id" json:"id"`
	StudentID string           `db:"student_id" json:"student_id"`
	Date      string           `db:"record_date" json:"record_date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceMap is the nested view of all attendance rows, keyed by student
// then date. A missing entry means "present" at display time; that default is
// applied by the attendance service, never stored.
type AttendanceMap map[string]map[string]AttendanceStatus

// Set records a status, allocating the inner map on first use.
func (m AttendanceMap) Set(studentID, date string, status AttendanceStatus) {
	byDate, ok := m[studentID]
	if !ok {
		byDate = make(map[string]AttendanceStatus)
		m[studentID] = byDate
	}
	byDate[date] = status
}

// StatusOf returns the stored status for (student, date), or the display
// default Present when no row exists. All "absent entry means present" logic
// funnels through here.
func (m AttendanceMap) StatusOf(studentID, date string) AttendanceStatus {
	if status, ok := m.Get(studentID, date); ok {
		return status
	}
	return AttendanceStatusPresent
}

// Get looks up a stored status; ok is false when no row exists.
func (m AttendanceMap) Get(studentID, date string) (AttendanceStatus, bool) {
	byDate, ok := m[studentID]
	if !ok {
		return "", false
	}
	status, ok := byDate[date]
	return status, ok
}

// MarkOutcome is the per-edit result of a bulk attendance write. Every item
// in a bulk request gets exactly one outcome, so failed edits are visible to
// the caller instead of silently diverging.
type MarkOutcome string

const (
	MarkConfirmed MarkOutcome = "confirmed"
	MarkFailed    MarkOutcome = "failed"
)

// AttendanceMarkResult reports the outcome for one (student, date) edit.
type AttendanceMarkResult struct {
	StudentID string      `json:"student_id"`
	Date      string      `json:"record_date"`
	Outcome   MarkOutcome `json:"outcome"`
	Reason    string      `json:"reason,omitempty"`
}
