package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

// HolidayRepository handles persistence for the holiday table.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs the repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// List returns every holiday date ascending.
func (r *HolidayRepository) List(ctx context.Context) ([]models.Holiday, error) {
	query := `SELECT to_char(holiday_date, 'YYYY-MM-DD') AS holiday_date FROM holidays ORDER BY holiday_date ASC`
	holidays := []models.Holiday{}
	if err := r.db.SelectContext(ctx, &holidays, query); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return holidays, nil
}

// Insert marks a date as a holiday; inserting an existing date is a no-op.
func (r *HolidayRepository) Insert(ctx context.Context, date string) error {
	query := `INSERT INTO holidays (holiday_date) VALUES ($1::date) ON CONFLICT (holiday_date) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, date); err != nil {
		return fmt.Errorf("insert holiday: %w", err)
	}
	return nil
}

// Delete unmarks a holiday; deleting an absent date is a no-op.
func (r *HolidayRepository) Delete(ctx context.Context, date string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE holiday_date = $1::date`, date); err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	return nil
}
