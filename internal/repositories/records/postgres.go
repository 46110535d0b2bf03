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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, fullName, address string, signature []byte) (int64, error) {
	query :=
		`INSERT INTO users (fullname, address, signature)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id int64
	if err := r.db.QueryRowContext(ctx, query, fullName, address, signature).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Record) (bool, error) {
	query :=
		`UPDATE users SET fullname = $1, address = $2, signature = $3
		 WHERE id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, rec.FullName, rec.Address, rec.Signature, rec.ID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, fullname, address, signature FROM users`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanAll(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Record, error) {
	query :=
		`SELECT id, fullname, address, signature FROM users
		 WHERE id = $1
		 `

	rec, err := scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
