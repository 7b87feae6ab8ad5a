package records

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/dbx"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements services.Repository over a DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db    dbx.DBTX
	newID func() string
}

// NewSQLiteRepository returns a repository bound to db. Record ids are
// random UUIDs.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, newID: uuid.NewString}
}

// List returns every record, newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Record, error) {
	query := `select id, first_name, last_name, reg_number, page_number, notes, created_at
		from records order by created_at desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []models.Record
	for rows.Next() {
		var item models.Record
		if err := rows.Scan(&item.ID, &item.FirstName, &item.LastName,
			&item.RegNumber, &item.PageNumber, &item.Notes, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts rec under a freshly generated id and returns that id.
func (r *SQLiteRepository) Create(ctx context.Context, rec models.Record) (string, error) {
	id := r.newID()
	query := `insert into records (id, first_name, last_name, reg_number, page_number, notes, created_at)
		values (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		id, rec.FirstName, rec.LastName, rec.RegNumber, rec.PageNumber, rec.Notes, rec.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert record: %w", mapError(err))
	}
	return id, nil
}

// Update overwrites the editable fields of record id.
func (r *SQLiteRepository) Update(ctx context.Context, id string, in models.RecordInput) error {
	query := `update records set first_name=?, last_name=?, reg_number=?, page_number=?, notes=?
		where id=?`
	res, err := r.db.ExecContext(ctx, query,
		in.FirstName, in.LastName, in.RegNumber, in.PageNumber, in.Notes, id)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", mapError(err))
	}
	return dbx.ExpectOneRow(res)
}

// Delete removes record id. A missing record is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `delete from records where id=?`, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// DeleteBatch removes up to common.MaxBatchSize records in one statement.
func (r *SQLiteRepository) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) > common.MaxBatchSize {
		return fmt.Errorf("%w: %d ids", common.ErrBatchTooLarge, len(ids))
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `delete from records where id in (` + placeholders(len(ids)) + `)`

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func mapError(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return errors.Join(common.ErrDuplicateKey, err)
	}
	return err
}
