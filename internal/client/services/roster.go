// Package services holds the client-side roster logic: the record store with
// its validation and duplicate detection, and spreadsheet import.
package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/logging"
	"github.com/dmitrijs2005/roster/internal/timex"
)

// Result describes a successful add or update. Collisions lists existing
// records with a similar name; they are advisory and never block the write.
type Result struct {
	ID         string
	Collisions []models.Record
}

// RosterService keeps an in-memory copy of every record and routes all
// mutations through the Repository, validating them against that copy.
//
// Mutations are serialized: writeMu is held for the whole call, including
// the backend round trip, so two adds can never pass the composite-key check
// against the same stale snapshot. Readers only take cacheMu and always get
// copies.
type RosterService struct {
	repo   Repository
	clock  timex.Clock
	logger logging.Logger

	writeMu sync.Mutex

	cacheMu sync.RWMutex
	records []models.Record
}

func NewRosterService(repo Repository, clock timex.Clock, logger logging.Logger) *RosterService {
	return &RosterService{
		repo:   repo,
		clock:  clock,
		logger: logger.With("module", "roster"),
	}
}

// Initialize replaces the cache with the backend's contents, newest first.
// On failure the cache is left empty.
func (s *RosterService) Initialize(ctx context.Context) ([]models.Record, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.reload(ctx)
}

func (s *RosterService) reload(ctx context.Context) ([]models.Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.replaceCache(nil)
		s.logger.Error(ctx, "loading records failed", "error", err)
		return nil, persistenceError("list", err)
	}

	slices.SortStableFunc(records, func(a, b models.Record) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		default:
			return 0
		}
	})

	s.replaceCache(records)
	s.logger.Info(ctx, "records loaded", "count", len(records))
	return slices.Clone(records), nil
}

// Add validates and stores a new record. A record with the same registration
// and page number fails with common.ErrDuplicateKey before anything is
// written.
func (s *RosterService) Add(ctx context.Context, in models.RecordInput) (Result, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Records()

	if existing, ok := FindKeyConflict(in.Key(), current, ""); ok {
		return Result{}, fmt.Errorf("%w: reg %s, page %s (%s)",
			common.ErrDuplicateKey, in.RegNumber, in.PageNumber, existing.FullName())
	}

	collisions := MatchNames(in.FirstName, in.LastName, current, "")

	r := in.Apply(models.Record{CreatedAt: timex.UnixMilli(s.clock)})

	id, err := s.repo.Create(ctx, r)
	if err != nil {
		s.logger.Error(ctx, "create failed", "reg", r.RegNumber, "page", r.PageNumber, "error", err)
		return Result{}, persistenceError("create", err)
	}
	r.ID = id

	s.cacheMu.Lock()
	s.records = slices.Insert(s.records, 0, r)
	s.cacheMu.Unlock()

	if len(collisions) > 0 {
		s.logger.Warn(ctx, "name already on the roster", "id", id, "matches", len(collisions))
	}

	return Result{ID: id, Collisions: collisions}, nil
}

// Update replaces the editable fields of record id. ID and CreatedAt never
// change and the record keeps its position in the cache.
func (s *RosterService) Update(ctx context.Context, id string, in models.RecordInput) (Result, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Records()

	if existing, ok := FindKeyConflict(in.Key(), current, id); ok {
		return Result{}, fmt.Errorf("%w: reg %s, page %s (%s)",
			common.ErrDuplicateKey, in.RegNumber, in.PageNumber, existing.FullName())
	}

	collisions := MatchNames(in.FirstName, in.LastName, current, id)

	if err := s.repo.Update(ctx, id, in); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.removeFromCache(id)
			return Result{}, fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
		}
		s.logger.Error(ctx, "update failed", "id", id, "error", err)
		return Result{}, persistenceError("update", err)
	}

	s.cacheMu.Lock()
	idx := indexOf(s.records, id)
	if idx >= 0 {
		s.records[idx] = in.Apply(s.records[idx])
	}
	s.cacheMu.Unlock()

	if idx < 0 {
		// The backend knew the record but the cache did not: resync.
		s.logger.Warn(ctx, "cache out of sync after update, reloading", "id", id)
		notFound := fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
		if _, err := s.reload(ctx); err != nil {
			return Result{}, errors.Join(notFound, err)
		}
		return Result{}, notFound
	}

	return Result{ID: id, Collisions: collisions}, nil
}

// Delete removes record id from the backend and then from the cache.
// Deleting an unknown id leaves the cache unchanged.
func (s *RosterService) Delete(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "delete failed", "id", id, "error", err)
		return persistenceError("delete", err)
	}

	s.removeFromCache(id)
	return nil
}

// DeleteAll removes every record in sequential batches of at most
// common.MaxBatchSize ids. Batches are not atomic as a group: when one fails,
// earlier batches stay deleted and the cache is reloaded from the backend.
func (s *RosterService) DeleteAll(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Records()
	ids := make([]string, len(current))
	for i, r := range current {
		ids[i] = r.ID
	}

	for batch := range slices.Chunk(ids, common.MaxBatchSize) {
		if err := s.repo.DeleteBatch(ctx, batch); err != nil {
			s.logger.Error(ctx, "batch delete failed, reloading", "batch_size", len(batch), "error", err)
			perr := persistenceError("delete all", err)
			if _, rerr := s.reload(ctx); rerr != nil {
				return errors.Join(perr, rerr)
			}
			return perr
		}
	}

	s.replaceCache(nil)
	s.logger.Info(ctx, "all records deleted", "count", len(ids))
	return nil
}

// Get returns the cached record with the given id.
func (s *RosterService) Get(id string) (models.Record, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	idx := indexOf(s.records, id)
	if idx < 0 {
		return models.Record{}, false
	}
	return s.records[idx], true
}

// Records returns a copy of the cache in its current order.
func (s *RosterService) Records() []models.Record {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	return slices.Clone(s.records)
}

// Len returns the number of cached records.
func (s *RosterService) Len() int {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	return len(s.records)
}

// CheckName runs the duplicate-name matcher against the cache. Forms call it
// while a name is being typed; excludeID is the record being edited, if any.
func (s *RosterService) CheckName(first, last, excludeID string) []models.Record {
	return MatchNames(first, last, s.Records(), excludeID)
}

func (s *RosterService) replaceCache(records []models.Record) {
	s.cacheMu.Lock()
	s.records = records
	s.cacheMu.Unlock()
}

func (s *RosterService) removeFromCache(id string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if idx := indexOf(s.records, id); idx >= 0 {
		s.records = slices.Delete(s.records, idx, idx+1)
	}
}

func indexOf(records []models.Record, id string) int {
	return slices.IndexFunc(records, func(r models.Record) bool { return r.ID == id })
}
