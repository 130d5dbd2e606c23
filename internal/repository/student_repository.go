package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

// StudentRepository handles persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every student ordered by name.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := `SELECT id, class_id, name, nis, nisn, created_at, updated_at FROM students ORDER BY name ASC`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Create inserts a new student row.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	student.CreatedAt = now
	student.UpdatedAt = now
	query := `INSERT INTO students (id, class_id, name, nis, nisn, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query, student.ID, student.ClassID, student.Name, student.NIS, student.NISN, student.CreatedAt, student.UpdatedAt); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update rewrites the editable fields of a student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	query := `UPDATE students SET class_id = $2, name = $3, nis = $4, nisn = $5, updated_at = $6 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, student.ID, student.ClassID, student.Name, student.NIS, student.NISN, student.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireRow(res, "student")
}

// Delete removes a student row.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireRow(res, "student")
}

// Upsert inserts or overwrites a student by id, used by snapshot import.
func (r *StudentRepository) Upsert(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	query := `INSERT INTO students (id, class_id, name, nis, nisn, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id)
DO UPDATE SET class_id = EXCLUDED.class_id, name = EXCLUDED.name, nis = EXCLUDED.nis, nisn = EXCLUDED.nisn, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, student.ID, student.ClassID, student.Name, student.NIS, student.NISN, student.CreatedAt, student.UpdatedAt); err != nil {
		return fmt.Errorf("upsert student: %w", err)
	}
	return nil
}
