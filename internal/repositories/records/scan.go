package records

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/signbook/internal/models"
)

// affected turns an Exec result into the found flag shared by Update and Delete.
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func scanAll(rows *sql.Rows) ([]models.Record, error) {
	defer rows.Close()

	result := make([]models.Record, 0)
	for rows.Next() {
		var (
			item              models.Record
			fullName, address sql.NullString
		)
		if err := rows.Scan(&item.ID, &fullName, &address, &item.Signature); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.FullName = fullName.String
		item.Address = address.String
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func scanOne(row *sql.Row) (*models.Record, error) {
	var (
		item              models.Record
		fullName, address sql.NullString
	)
	if err := row.Scan(&item.ID, &fullName, &address, &item.Signature); err != nil {
		return nil, err
	}
	item.FullName = fullName.String
	item.Address = address.String
	return &item, nil
}
