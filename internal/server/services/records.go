// Package services holds the roster server's business logic on top of the
// repositories vended by repomanager.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/dbx"
	"github.com/dmitrijs2005/roster/internal/logging"
	"github.com/dmitrijs2005/roster/internal/server/models"
	"github.com/dmitrijs2005/roster/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/roster/internal/timex"
	"github.com/google/uuid"
)

type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       timex.Clock
	newID       func() string
	logger      logging.Logger
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, clock timex.Clock, logger logging.Logger) *RecordService {
	return &RecordService{
		db:          db,
		repomanager: m,
		clock:       clock,
		newID:       uuid.NewString,
		logger:      logger.With("module", "record_service"),
	}
}

// List returns every record, newest first.
func (s *RecordService) List(ctx context.Context) ([]models.Record, error) {
	return s.repomanager.Records(s.db).List(ctx)
}

// Create stores a new record under a fresh id. A zero CreatedAt is stamped
// with the current time. A taken (reg, page) pair fails with
// common.ErrDuplicateKey.
func (s *RecordService) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	rec = rec.Normalize()
	if err := rec.Validate(); err != nil {
		return models.Record{}, err
	}

	rec.ID = s.newID()
	if rec.CreatedAt == 0 {
		rec.CreatedAt = timex.UnixMilli(s.clock)
	}

	if err := s.repomanager.Records(s.db).Create(ctx, rec); err != nil {
		return models.Record{}, err
	}

	s.logger.Debug(ctx, "record created", "id", rec.ID, "reg", rec.RegNumber, "page", rec.PageNumber)
	return rec, nil
}

// Update overwrites the editable fields of rec.ID.
func (s *RecordService) Update(ctx context.Context, rec models.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	rec = rec.Normalize()
	if err := rec.Validate(); err != nil {
		return err
	}
	return s.repomanager.Records(s.db).Update(ctx, rec)
}

func (s *RecordService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	return s.repomanager.Records(s.db).Delete(ctx, id)
}

// DeleteBatch removes up to common.MaxBatchSize records in one transaction.
func (s *RecordService) DeleteBatch(ctx context.Context, ids []string) (int64, error) {
	if len(ids) > common.MaxBatchSize {
		return 0, fmt.Errorf("%w: %d ids", common.ErrBatchTooLarge, len(ids))
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := s.repomanager.Records(tx).DeleteBatch(ctx, ids)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete batch: %w", err)
	}

	s.logger.Info(ctx, "batch deleted", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}
