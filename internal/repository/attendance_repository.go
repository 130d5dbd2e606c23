package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

// AttendanceRepository handles persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns every attendance row.
func (r *AttendanceRepository) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	query := `SELECT id, student_id, to_char(record_date, 'YYYY-MM-DD') AS record_date, status, created_at, updated_at
FROM attendance_records`
	records := []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return records, nil
}

// Upsert inserts or updates one record keyed by (student_id, record_date).
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	query := `INSERT INTO attendance_records (id, student_id, record_date, status, created_at, updated_at)
VALUES ($1, $2, $3::date, $4, $5, $6)
ON CONFLICT (student_id, record_date)
DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.StudentID, record.Date, record.Status, record.CreatedAt, record.UpdatedAt); err != nil {
		return fmt.Errorf("upsert attendance record: %w", err)
	}
	return nil
}

// BulkUpsert writes many records best-effort, one statement each, so one bad
// record cannot sink the rest of the batch. The outcome list covers every
// input record.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, records []models.AttendanceRecord) ([]models.AttendanceMarkResult, error) {
	if len(records) == 0 {
		return nil, nil
	}

	query := `INSERT INTO attendance_records (id, student_id, record_date, status, created_at, updated_at)
VALUES ($1, $2, $3::date, $4, $5, $6)
ON CONFLICT (student_id, record_date)
DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	results := make([]models.AttendanceMarkResult, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		result := models.AttendanceMarkResult{StudentID: rec.StudentID, Date: rec.Date, Outcome: models.MarkConfirmed}
		if _, err := r.db.ExecContext(ctx, query, rec.ID, rec.StudentID, rec.Date, rec.Status, rec.CreatedAt, rec.UpdatedAt); err != nil {
			result.Outcome = models.MarkFailed
			result.Reason = err.Error()
		}
		results = append(results, result)
	}
	return results, nil
}

// Wipe deletes every attendance row. No other table is touched.
func (r *AttendanceRepository) Wipe(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attendance_records`); err != nil {
		return fmt.Errorf("wipe attendance records: %w", err)
	}
	return nil
}
