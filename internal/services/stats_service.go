package services

import (
	"context"
	"time"

	"fitness-journal/internal/domain"
	"fitness-journal/internal/logging"
	"fitness-journal/internal/metrics"
	"fitness-journal/internal/repository"
)

const dayLayout = "2006-01-02"

// statsServiceImpl implements the StatsService interface
type statsServiceImpl struct {
	repo  repository.EntryRepository
	cache StatsCache
	loc   *time.Location
	now   func() time.Time
}

// NewStatsService creates a new StatsService. Calendar days are taken in loc;
// cache may be nil.
func NewStatsService(repo repository.EntryRepository, cache StatsCache, loc *time.Location) StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &statsServiceImpl{
		repo:  repo,
		cache: cache,
		loc:   loc,
		now:   time.Now,
	}
}

// GetStats returns the user's stats, from the cache when a value computed
// today is available.
func (s *statsServiceImpl) GetStats(ctx context.Context, userID string) (*domain.Stats, error) {
	now := s.now().In(s.loc)
	day := now.Format(dayLayout)
	log := logging.With("user_id", userID)

	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		cached, gen, err := s.cache.Get(ctx, userID, day)
		switch {
		case err != nil:
			metrics.RecordStatsCache("error")
			log.Warnf("stats cache lookup failed: %v", err)
		case cached != nil:
			metrics.RecordStatsCache("hit")
			return cached, nil
		default:
			metrics.RecordStatsCache("miss")
			generation, cacheable = gen, true
		}
	}

	start := time.Now()
	entries, err := s.repo.ListAll(ctx, userID)
	observe("list_all_entries", start)
	if err != nil {
		return nil, err
	}

	stats := domain.CalculateStats(entries, now)

	// Stored only after a clean miss, under the generation read before ListAll.
	if cacheable {
		if err := s.cache.Set(ctx, userID, day, generation, stats); err != nil {
			log.Warnf("failed to store stats in cache: %v", err)
		}
	}

	return &stats, nil
}
