package repository

import (
	"database/sql"
	"fmt"
)

// requireAffected maps a zero-row write onto sql.ErrNoRows so services can translate it.
func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check %s rows: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
