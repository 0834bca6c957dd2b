// Package cache provides a Redis-backed cache for dashboard summary
// statistics. The cache is strictly optional: a nil *StatsCache is
// safe to call and behaves as a permanent miss, so deployments
// without Redis simply recompute the summary per request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/irfon92/carbon-dashboard/internal/alerts"
)

const statsKey = "carbonintel:stats"

// StatsCache caches computed SummaryStats with a TTL.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a stats cache to Redis. Returns nil (cache disabled)
// when addr is empty.
func New(addr string, db int, ttl time.Duration) *StatsCache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   3,
	})

	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached summary, or false on a miss. Redis errors
// degrade to a miss; the dashboard must keep answering without the
// cache.
func (c *StatsCache) Get(ctx context.Context) (alerts.SummaryStats, bool) {
	var stats alerts.SummaryStats
	if c == nil {
		return stats, false
	}

	data, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("stats cache read failed")
		}
		return stats, false
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		log.Warn().Err(err).Msg("stats cache entry corrupt, discarding")
		return alerts.SummaryStats{}, false
	}
	return stats, true
}

// Set stores the summary for the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats alerts.SummaryStats) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := c.client.Set(ctx, statsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary; called after every snapshot
// refresh so readers never see stats from a superseded batch.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *StatsCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
