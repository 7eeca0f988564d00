package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fitness-journal/internal/domain"
	"fitness-journal/internal/repository/sqlstore"
)

func setupTestDB(t *testing.T) *sqlstore.DB {
	t.Helper()
	db, err := sqlstore.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sqlstore.DB, email string) *domain.User {
	t.Helper()
	user, err := sqlstore.NewUserRepository(db).Create(context.Background(), domain.NewUser(email, "Test User", "hash"))
	require.NoError(t, err)
	return user
}

func newTestAuthService(db *sqlstore.DB) AuthService {
	return NewAuthService(
		sqlstore.NewUserRepository(db),
		NewTokenService("test-secret-key-min-32-characters-long", "fitness-journal", time.Hour),
		bcrypt.MinCost,
	)
}

// fakeStatsCache is an in-memory StatsCache that records calls. beforeSet,
// when set, runs at the start of Set outside the lock.
type fakeStatsCache struct {
	mu          sync.Mutex
	values      map[string]cachedValue
	generations map[string]int64
	gets        int
	sets        int
	invalidated []string
	getErr      error
	beforeSet   func()
}

type cachedValue struct {
	day        string
	generation int64
	stats      domain.Stats
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{
		values:      make(map[string]cachedValue),
		generations: make(map[string]int64),
	}
}

func (f *fakeStatsCache) Get(_ context.Context, userID, day string) (*domain.Stats, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, 0, f.getErr
	}
	gen := f.generations[userID]
	v, ok := f.values[userID]
	if !ok || v.day != day || v.generation != gen {
		return nil, gen, nil
	}
	stats := v.stats
	return &stats, gen, nil
}

func (f *fakeStatsCache) Set(_ context.Context, userID, day string, generation int64, stats domain.Stats) error {
	if f.beforeSet != nil {
		f.beforeSet()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.values[userID] = cachedValue{day: day, generation: generation, stats: stats}
	return nil
}

func (f *fakeStatsCache) Invalidate(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, userID)
	f.generations[userID]++
	delete(f.values, userID)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
