package grpc

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/server/models"
)

// memService is an in-memory RecordService that enforces the composite key
// the way the database constraint does.
type memService struct {
	mu      sync.Mutex
	records []models.Record
	nextID  int

	err error
}

func (m *memService) List(ctx context.Context) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := slices.Clone(m.records)
	slices.SortStableFunc(out, func(a, b models.Record) int { return int(b.CreatedAt - a.CreatedAt) })
	return out, nil
}

func (m *memService) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Record{}, m.err
	}
	rec = rec.Normalize()
	if err := rec.Validate(); err != nil {
		return models.Record{}, err
	}
	for _, r := range m.records {
		if r.RegNumber == rec.RegNumber && r.PageNumber == rec.PageNumber {
			return models.Record{}, fmt.Errorf("insert: %w", common.ErrDuplicateKey)
		}
	}
	m.nextID++
	rec.ID = fmt.Sprintf("id-%d", m.nextID)
	m.records = append(m.records, rec)
	return rec, nil
}

func (m *memService) Update(ctx context.Context, rec models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, r := range m.records {
		if r.ID == rec.ID {
			rec.CreatedAt = r.CreatedAt
			m.records[i] = rec
			return nil
		}
	}
	return common.ErrorNotFound
}

func (m *memService) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = slices.DeleteFunc(m.records, func(r models.Record) bool { return r.ID == id })
	return nil
}

func (m *memService) DeleteBatch(ctx context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if len(ids) > common.MaxBatchSize {
		return 0, common.ErrBatchTooLarge
	}
	before := len(m.records)
	m.records = slices.DeleteFunc(m.records, func(r models.Record) bool { return slices.Contains(ids, r.ID) })
	return int64(before - len(m.records)), nil
}
