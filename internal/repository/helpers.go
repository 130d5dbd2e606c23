package repository

import (
	"database/sql"
	"fmt"
)

// requireRow converts a zero-rows-affected result into sql.ErrNoRows so the
// service layer can map it to a 404.
func requireRow(res sql.Result, entity string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", entity, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
