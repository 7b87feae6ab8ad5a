package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/logging"
	"github.com/dmitrijs2005/roster/internal/timex"
	"github.com/stretchr/testify/mock"
)

var errBoom = errors.New("boom")

// memRepo is an in-memory Repository. It does not enforce the composite key,
// so tests see exactly what the store itself guarantees.
type memRepo struct {
	mu      sync.Mutex
	records map[string]models.Record
	nextID  int

	listErr   error
	createErr error

	// failBatch makes the n-th DeleteBatch call (1-based) fail.
	failBatch int
	batches   [][]string
}

func newMemRepo() *memRepo {
	return &memRepo{records: map[string]models.Record{}}
}

func (m *memRepo) List(ctx context.Context) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b models.Record) int { return int(b.CreatedAt - a.CreatedAt) })
	return out, nil
}

func (m *memRepo) Create(ctx context.Context, r models.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return "", m.createErr
	}
	m.nextID++
	r.ID = fmt.Sprintf("id-%d", m.nextID)
	m.records[r.ID] = r
	return r.ID, nil
}

func (m *memRepo) Update(ctx context.Context, id string, in models.RecordInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return common.ErrorNotFound
	}
	m.records[id] = in.Apply(r)
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memRepo) DeleteBatch(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, slices.Clone(ids))
	if m.failBatch == len(m.batches) {
		return errBoom
	}
	for _, id := range ids {
		delete(m.records, id)
	}
	return nil
}

// seed puts n records straight into the repo with increasing CreatedAt.
func (m *memRepo) seed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		m.nextID++
		id := fmt.Sprintf("id-%d", m.nextID)
		m.records[id] = models.Record{
			ID:         id,
			FirstName:  fmt.Sprintf("Student%d", i),
			RegNumber:  fmt.Sprintf("%d", 1000+i),
			PageNumber: "1",
			CreatedAt:  int64(i + 1),
		}
	}
}

// mockRepository is a testify mock of Repository for call-level assertions.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context) ([]models.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Record), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, r models.Record) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id string, in models.RecordInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) DeleteBatch(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

var testEpoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestService(repo Repository) (*RosterService, *timex.ManualClock) {
	clock := timex.NewManualClock(testEpoch)
	return NewRosterService(repo, clock, logging.Nop()), clock
}
