package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

// ClassRepository handles persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns every class ordered by name.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	query := `SELECT id, name, schedule, created_at, updated_at FROM classes ORDER BY name ASC`
	classes := []models.Class{}
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// Create inserts a new class row.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	now := time.Now().UTC()
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	class.CreatedAt = now
	class.UpdatedAt = now
	query := `INSERT INTO classes (id, name, schedule, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, class.ID, class.Name, pq.Int64Array(class.Schedule), class.CreatedAt, class.UpdatedAt); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update rewrites name and schedule for an existing class.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	class.UpdatedAt = time.Now().UTC()
	query := `UPDATE classes SET name = $2, schedule = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, class.ID, class.Name, pq.Int64Array(class.Schedule), class.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return requireRow(res, "class")
}

// Delete removes a class row. Dependent rows are the database's concern via
// ON DELETE CASCADE.
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return requireRow(res, "class")
}

// Upsert inserts or overwrites a class by id, used by snapshot import.
func (r *ClassRepository) Upsert(ctx context.Context, class *models.Class) error {
	now := time.Now().UTC()
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now
	query := `INSERT INTO classes (id, name, schedule, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id)
DO UPDATE SET name = EXCLUDED.name, schedule = EXCLUDED.schedule, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, class.ID, class.Name, pq.Int64Array(class.Schedule), class.CreatedAt, class.UpdatedAt); err != nil {
		return fmt.Errorf("upsert class: %w", err)
	}
	return nil
}
