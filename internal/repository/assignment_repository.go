package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

// AssignmentRepository handles persistence for assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns every assignment ordered by due date.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	query := `SELECT id, class_id, title, description, to_char(due_date, 'YYYY-MM-DD') AS due_date, created_at, updated_at
FROM assignments ORDER BY due_date ASC`
	assignments := []models.Assignment{}
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// Create inserts a new assignment row.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	now := time.Now().UTC()
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	query := `INSERT INTO assignments (id, class_id, title, description, due_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5::date, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query, assignment.ID, assignment.ClassID, assignment.Title, assignment.Description, assignment.DueDate, assignment.CreatedAt, assignment.UpdatedAt); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update rewrites the editable fields of an assignment.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	assignment.UpdatedAt = time.Now().UTC()
	query := `UPDATE assignments SET title = $2, description = $3, due_date = $4::date, updated_at = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, assignment.ID, assignment.Title, assignment.Description, assignment.DueDate, assignment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return requireRow(res, "assignment")
}

// Delete removes an assignment row.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return requireRow(res, "assignment")
}

// Upsert inserts or overwrites an assignment by id, used by snapshot import.
func (r *AssignmentRepository) Upsert(ctx context.Context, assignment *models.Assignment) error {
	now := time.Now().UTC()
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now
	query := `INSERT INTO assignments (id, class_id, title, description, due_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5::date, $6, $7)
ON CONFLICT (id)
DO UPDATE SET class_id = EXCLUDED.class_id, title = EXCLUDED.title, description = EXCLUDED.description, due_date = EXCLUDED.due_date, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, assignment.ID, assignment.ClassID, assignment.Title, assignment.Description, assignment.DueDate, assignment.CreatedAt, assignment.UpdatedAt); err != nil {
		return fmt.Errorf("upsert assignment: %w", err)
	}
	return nil
}
