// Package cache keeps computed stats in Redis so repeated dashboard loads do
// not rescan a user's whole journal.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"fitness-journal/internal/domain"
)

const (
	keyPrefix        = "journal:stats:"
	generationPrefix = "journal:stats:gen:"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// cachedStats is the stored value. Day pins the calendar day the stats were
// computed for and Generation the user's generation when the computation
// started; a value from another day or generation is treated as a miss.
type cachedStats struct {
	Day        string       `json:"day"`
	Generation int64        `json:"generation"`
	Stats      domain.Stats `json:"stats"`
}

// StatsCache stores per-user stats in Redis
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStatsCache creates a cache and verifies the connection
func NewStatsCache(ctx context.Context, opts Options) (*StatsCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	return NewStatsCacheWithClient(rdb, opts.TTL), nil
}

// NewStatsCacheWithClient wraps an existing client
func NewStatsCacheWithClient(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Key returns the Redis key holding userID's stats
func Key(userID string) string {
	return keyPrefix + userID
}

// GenerationKey returns the Redis key counting userID's invalidations. It has
// no TTL: an expired counter would restart at zero and revive stale values.
func GenerationKey(userID string) string {
	return generationPrefix + userID
}

// Get returns the cached stats for userID computed on day together with the
// user's current generation. stats is nil on a miss, including a value stored
// for another day or under an older generation. The generation is returned on
// misses too and must be passed to Set once fresh stats are computed.
func (c *StatsCache) Get(ctx context.Context, userID, day string) (*domain.Stats, int64, error) {
	values, err := c.rdb.MGet(ctx, Key(userID), GenerationKey(userID)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get stats from redis: user_id=%s: %w", userID, err)
	}

	var generation int64
	if raw, ok := values[1].(string); ok {
		generation, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid stats generation: user_id=%s: %w", userID, err)
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, nil
	}

	var cached cachedStats
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, generation, fmt.Errorf("failed to unmarshal cached stats: user_id=%s: %w", userID, err)
	}
	if cached.Day != day || cached.Generation != generation {
		return nil, generation, nil
	}
	return &cached.Stats, generation, nil
}

// Set stores stats for userID computed on day from data read at generation.
// If the user was invalidated since, the value is written but never served.
func (c *StatsCache) Set(ctx context.Context, userID, day string, generation int64, stats domain.Stats) error {
	data, err := json.Marshal(cachedStats{Day: day, Generation: generation, Stats: stats})
	if err != nil {
		return fmt.Errorf("failed to marshal stats: user_id=%s: %w", userID, err)
	}
	if err := c.rdb.Set(ctx, Key(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save stats to redis: user_id=%s: %w", userID, err)
	}
	return nil
}

// Invalidate bumps userID's generation and drops the cached stats, so values
// computed before the call are never served afterwards.
func (c *StatsCache) Invalidate(ctx context.Context, userID string) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(userID))
		pipe.Del(ctx, Key(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate stats in redis: user_id=%s: %w", userID, err)
	}
	return nil
}

// Health checks Redis connectivity
func (c *StatsCache) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *StatsCache) Close() error {
	return c.rdb.Close()
}
