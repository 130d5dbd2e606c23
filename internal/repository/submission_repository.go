package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

// SubmissionRepository handles persistence for assignment submissions.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// List returns every submission row.
func (r *SubmissionRepository) List(ctx context.Context) ([]models.Submission, error) {
	query := `SELECT id, assignment_id, student_id, is_submitted, score, created_at, updated_at FROM submissions`
	submissions := []models.Submission{}
	if err := r.db.SelectContext(ctx, &submissions, query); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// Upsert inserts or updates a submission keyed by (assignment_id, student_id).
func (r *SubmissionRepository) Upsert(ctx context.Context, submission *models.Submission) error {
	now := time.Now().UTC()
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = now
	}
	submission.UpdatedAt = now
	query := `INSERT INTO submissions (id, assignment_id, student_id, is_submitted, score, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (assignment_id, student_id)
DO UPDATE SET is_submitted = EXCLUDED.is_submitted, score = EXCLUDED.score, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, submission.ID, submission.AssignmentID, submission.StudentID, submission.IsSubmitted, submission.Score, submission.CreatedAt, submission.UpdatedAt); err != nil {
		return fmt.Errorf("upsert submission: %w", err)
	}
	return nil
}
