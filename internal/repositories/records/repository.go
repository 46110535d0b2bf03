package records

import (
	"context"

	"github.com/dmitrijs2005/signbook/internal/models"
)

// Repository describes the Record Store operations.
type Repository interface {
	// Create inserts a new record and returns the identifier the store assigned.
	Create(ctx context.Context, fullName, address string, signature []byte) (int64, error)

	// Update overwrites full name, address and signature of the record with rec.ID.
	// found is false when no such record exists.
	Update(ctx context.Context, rec *models.Record) (found bool, err error)

	// Delete removes the record with the given id. found is false when no such record exists.
	Delete(ctx context.Context, id int64) (found bool, err error)

	// ListAll returns every record in storage order.
	ListAll(ctx context.Context) ([]models.Record, error)

	// GetByID returns one record or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}
