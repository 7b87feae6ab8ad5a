// Package records provides the PostgreSQL-backed record repository of the
// roster server.
package records

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/dbx"
	"github.com/dmitrijs2005/roster/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE of a UNIQUE constraint failure.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Record, error) {
	query := `SELECT id, first_name, last_name, reg_number, page_number, notes, created_at
		FROM records ORDER BY created_at DESC`
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

func (r *PostgresRepository) Create(ctx context.Context, rec models.Record) error {
	query := `INSERT INTO records (id, first_name, last_name, reg_number, page_number, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.FirstName, rec.LastName, rec.RegNumber, rec.PageNumber, rec.Notes, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", mapError(err))
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec models.Record) error {
	query := `UPDATE records SET first_name=$1, last_name=$2, reg_number=$3, page_number=$4, notes=$5
		WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query,
		rec.FirstName, rec.LastName, rec.RegNumber, rec.PageNumber, rec.Notes, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", mapError(err))
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteBatch(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if len(ids) > common.MaxBatchSize {
		return 0, fmt.Errorf("%w: %d ids", common.ErrBatchTooLarge, len(ids))
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `DELETE FROM records WHERE id IN (` + placeholders(len(ids)) + `)`

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete batch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// placeholders renders "$1,$2,...,$n".
func placeholders(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteByte(',')
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Join(common.ErrDuplicateKey, err)
	}
	return err
}
