package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/signbook/internal/common"
	"github.com/dmitrijs2005/signbook/internal/dbx"
	"github.com/dmitrijs2005/signbook/internal/models"
)

// SQLiteRepository implements Repository on SQLite.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, fullName, address string, signature []byte) (int64, error) {
	query := `INSERT INTO users (fullname, address, signature) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, fullName, address, signature)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, rec *models.Record) (bool, error) {
	query := `UPDATE users SET fullname = ?, address = ?, signature = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, rec.FullName, rec.Address, rec.Signature, rec.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update record: %w", err)
	}
	return affected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}
	return affected(res)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, fullname, address, signature FROM users`)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	return scanAll(rows)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, fullname, address, signature FROM users WHERE id = ?`, id)

	rec, err := scanOne(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
