package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/dbx"
	"github.com/dmitrijs2005/roster/internal/logging"
	"github.com/dmitrijs2005/roster/internal/server/models"
	"github.com/dmitrijs2005/roster/internal/server/repositories/records"
	"github.com/dmitrijs2005/roster/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/roster/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// -------- test fakes --------

type fakeRecordsRepo struct {
	records.Repository

	created []models.Record
	updated []models.Record
	deleted []string
	batches [][]string

	createErr error
	updateErr error
	batchErr  error
}

func (f *fakeRecordsRepo) Create(ctx context.Context, rec models.Record) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, rec)
	return nil
}

func (f *fakeRecordsRepo) Update(ctx context.Context, rec models.Record) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, rec)
	return nil
}

func (f *fakeRecordsRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRecordsRepo) DeleteBatch(ctx context.Context, ids []string) (int64, error) {
	if f.batchErr != nil {
		return 0, f.batchErr
	}
	f.batches = append(f.batches, ids)
	return int64(len(ids)), nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	r *fakeRecordsRepo

	// bound records which DBTX each Records call received.
	bound []dbx.DBTX
}

func (m *fakeRepoManager) Records(db dbx.DBTX) records.Repository {
	m.bound = append(m.bound, db)
	return m.r
}

// -------- helpers --------

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*RecordService, *fakeRecordsRepo, *fakeRepoManager, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeRecordsRepo{}
	m := &fakeRepoManager{r: repo}
	s := NewRecordService(db, m, timex.NewManualClock(t0), logging.Nop())
	s.newID = func() string { return "new-id" }
	return s, repo, m, mock, db
}

// -------- tests --------

func TestCreate_NormalizesAndStamps(t *testing.T) {
	s, repo, _, _, _ := newService(t)

	got, err := s.Create(context.Background(), models.Record{ID: "ignored", FirstName: " Ali ", RegNumber: " 1 ", PageNumber: "2"})
	require.NoError(t, err)

	want := models.Record{ID: "new-id", FirstName: "Ali", RegNumber: "1", PageNumber: "2", CreatedAt: t0.UnixMilli()}
	assert.Equal(t, want, got)
	assert.Equal(t, []models.Record{want}, repo.created)
}

func TestCreate_KeepsClientTimestamp(t *testing.T) {
	s, _, _, _, _ := newService(t)

	got, err := s.Create(context.Background(), models.Record{FirstName: "Ali", RegNumber: "1", CreatedAt: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.CreatedAt)
}

func TestCreate_ValidationAndRepoErrors(t *testing.T) {
	s, repo, _, _, _ := newService(t)

	_, err := s.Create(context.Background(), models.Record{FirstName: "  ", RegNumber: "1"})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, repo.created)

	repo.createErr = errors.Join(common.ErrDuplicateKey, errBoom)
	_, err = s.Create(context.Background(), models.Record{FirstName: "Ali", RegNumber: "1"})
	require.ErrorIs(t, err, common.ErrDuplicateKey)
}

func TestUpdate(t *testing.T) {
	s, repo, _, _, _ := newService(t)

	require.ErrorIs(t, s.Update(context.Background(), models.Record{FirstName: "Ali", RegNumber: "1"}), common.ErrorValidation)

	require.NoError(t, s.Update(context.Background(), models.Record{ID: "a", FirstName: "Ali ", RegNumber: "1"}))
	require.Len(t, repo.updated, 1)
	assert.Equal(t, "Ali", repo.updated[0].FirstName)

	repo.updateErr = common.ErrorNotFound
	require.ErrorIs(t, s.Update(context.Background(), models.Record{ID: "b", FirstName: "Ali", RegNumber: "1"}), common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	s, repo, _, _, _ := newService(t)

	require.ErrorIs(t, s.Delete(context.Background(), ""), common.ErrorValidation)
	require.NoError(t, s.Delete(context.Background(), "a"))
	assert.Equal(t, []string{"a"}, repo.deleted)
}

func TestDeleteBatch_RunsInsideTransaction(t *testing.T) {
	s, repo, m, mock, _ := newService(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	n, err := s.DeleteBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, [][]string{{"a", "b"}}, repo.batches)

	require.Len(t, m.bound, 1)
	assert.IsType(t, &sql.Tx{}, m.bound[0], "repository must be bound to the transaction")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBatch_RollsBackOnError(t *testing.T) {
	s, repo, _, mock, _ := newService(t)
	repo.batchErr = errBoom
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.DeleteBatch(context.Background(), []string{"a"})
	require.ErrorIs(t, err, errBoom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBatch_LimitsAndEmpty(t *testing.T) {
	s, repo, _, mock, _ := newService(t)

	_, err := s.DeleteBatch(context.Background(), make([]string, common.MaxBatchSize+1))
	require.ErrorIs(t, err, common.ErrBatchTooLarge)

	n, err := s.DeleteBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Empty(t, repo.batches)
	require.NoError(t, mock.ExpectationsWereMet())
}
