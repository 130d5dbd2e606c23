package models

import "time"

// Assignment is a task given to one class. DueDate is a calendar date in
// canonical YYYY-MM-DD form, no time of day.
type Assignment struct {
	ID          string    `db:"id" json:"id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	DueDate     string    `db:"due_date" json:"due_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Submission is a stored submission row, unique on (assignment_id,
// student_id). Score is free text, not numerically validated.
type Submission struct {
	ID           string    `db:"id" json:"id"`
	AssignmentID string    `db:"assignment_id" json:"assignment_id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	IsSubmitted  bool      `db:"is_submitted" json:"is_submitted"`
	Score        string    `db:"score" json:"score"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SubmissionData is the view-model cell for one (assignment, student) pair.
type SubmissionData struct {
	IsSubmitted bool   `json:"isSubmitted"`
	Score       string `json:"score"`
}

// AssignmentData is an assignment with a submissions map that is dense over
// the owning class roster: students without a stored row appear with the
// not-submitted default.
type AssignmentData struct {
	Assignment
	Submissions map[string]SubmissionData `json:"submissions"`
}
