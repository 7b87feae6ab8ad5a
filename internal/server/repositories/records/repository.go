package records

import (
	"context"

	"github.com/dmitrijs2005/roster/internal/server/models"
)

// Repository persists roster records on the server.
type Repository interface {
	// List returns every record, newest first.
	List(ctx context.Context) ([]models.Record, error)
	// Create inserts rec as is, including its ID.
	Create(ctx context.Context, rec models.Record) error
	// Update overwrites the editable fields of rec.ID.
	Update(ctx context.Context, rec models.Record) error
	// Delete removes one record. A missing id is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteBatch removes up to common.MaxBatchSize records in one statement
	// and returns how many rows went away.
	DeleteBatch(ctx context.Context, ids []string) (int64, error)
}
