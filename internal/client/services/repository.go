package services

import (
	"context"

	"github.com/dmitrijs2005/roster/internal/client/models"
)

// Repository is the persistence adapter behind the roster store. The local
// SQLite repository and the remote gRPC client both implement it.
type Repository interface {
	// List returns every record, newest first by CreatedAt.
	List(ctx context.Context) ([]models.Record, error)

	// Create persists a new record and returns the identifier it assigned.
	// r.ID is ignored.
	Create(ctx context.Context, r models.Record) (string, error)

	// Update overwrites the editable fields of the record with the given id.
	Update(ctx context.Context, id string, in models.RecordInput) error

	// Delete removes a record. Removing a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteBatch removes up to common.MaxBatchSize records as one unit.
	DeleteBatch(ctx context.Context, ids []string) error
}
