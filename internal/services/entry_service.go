package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fitness-journal/internal/domain"
	"fitness-journal/internal/errors"
	"fitness-journal/internal/logging"
	"fitness-journal/internal/metrics"
	"fitness-journal/internal/repository"
)

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	repo  repository.EntryRepository
	cache StatsCache
}

// NewEntryService creates a new EntryService instance. cache may be nil.
func NewEntryService(repo repository.EntryRepository, cache StatsCache) EntryService {
	return &entryServiceImpl{repo: repo, cache: cache}
}

// List runs the page query and the count query concurrently and combines them.
func (s *entryServiceImpl) List(ctx context.Context, opts domain.ListOptions) (*domain.EntryPage, error) {
	var (
		entries []domain.Entry
		total   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		start := time.Now()
		entries, err = s.repo.List(gctx, opts)
		observe("list_entries", start)
		return err
	})
	g.Go(func() error {
		var err error
		start := time.Now()
		total, err = s.repo.Count(gctx, opts)
		observe("count_entries", start)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []domain.Entry{}
	}

	return &domain.EntryPage{
		Entries:    entries,
		Pagination: domain.NewPagination(opts.Page, opts.Limit, total),
	}, nil
}

// Create stores a new entry owned by userID
func (s *entryServiceImpl) Create(ctx context.Context, userID string, input domain.CreateEntryInput) (*domain.Entry, error) {
	entry := domain.NewEntry(userID, input)
	if !entry.IsValid() {
		return nil, errors.NewValidationError("invalid entry", nil)
	}

	start := time.Now()
	created, err := s.repo.Create(ctx, entry)
	observe("insert_entry", start)
	metrics.RecordEntryOperation("create", err)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, userID)
	return created, nil
}

// Get returns one entry. A malformed id is reported as not found.
func (s *entryServiceImpl) Get(ctx context.Context, userID, id string) (*domain.Entry, error) {
	if !isUUID(id) {
		return nil, errors.NewNotFoundError("entry", id)
	}
	return s.get(ctx, userID, id)
}

func (s *entryServiceImpl) get(ctx context.Context, userID, id string) (*domain.Entry, error) {
	start := time.Now()
	entry, err := s.repo.Get(ctx, userID, id)
	observe("select_entry", start)
	return entry, err
}

// Update applies a partial update to an entry owned by userID. An update
// with no fields writes nothing and returns the entry as stored.
func (s *entryServiceImpl) Update(ctx context.Context, userID, id string, input domain.UpdateEntryInput) (*domain.Entry, error) {
	if !isUUID(id) {
		return nil, errors.NewNotFoundError("entry", id)
	}
	if input.IsEmpty() {
		return s.get(ctx, userID, id)
	}

	start := time.Now()
	updated, err := s.repo.Update(ctx, userID, id, input)
	observe("update_entry", start)
	metrics.RecordEntryOperation("update", err)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, userID)
	return updated, nil
}

// Delete removes an entry owned by userID
func (s *entryServiceImpl) Delete(ctx context.Context, userID, id string) error {
	if !isUUID(id) {
		return errors.NewNotFoundError("entry", id)
	}

	start := time.Now()
	err := s.repo.Delete(ctx, userID, id)
	observe("delete_entry", start)
	metrics.RecordEntryOperation("delete", err)
	if err != nil {
		return err
	}

	s.invalidateStats(ctx, userID)
	return nil
}

// invalidateStats drops cached stats after a write. A cache failure is logged
// and otherwise ignored; the entry has already been written.
func (s *entryServiceImpl) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		logging.With("user_id", userID).Warnf("failed to invalidate stats cache: %v", err)
	}
}

func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

// observe records the latency of one repository call.
func observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}
