// Package cache holds the Redis-backed cache of the recently-mourned
// listing shown on the landing page. The listing is read on every page view
// but only changes when a tribute lands, so a short TTL plus best-effort
// invalidation keeps it fresh enough.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pomen/internal/person/models"
)

const recentKey = "pomen:recently-mourned"

// RecentCache caches the recently-mourned listing. A nil *RecentCache (or
// one built with a nil client) is a valid no-op cache, so callers never need
// to branch on whether Redis is configured.
type RecentCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New builds a RecentCache. Returns nil when client is nil.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RecentCache {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecentCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached listing and whether it was present. Cache errors
// are logged and reported as a miss.
func (c *RecentCache) Get(ctx context.Context) ([]*models.DeceasedPerson, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, recentKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "recent cache read failed", "error", err.Error())
		}
		return nil, false
	}
	var listed []*models.DeceasedPerson
	if err := json.Unmarshal(raw, &listed); err != nil {
		c.logger.WarnContext(ctx, "recent cache payload corrupt", "error", err.Error())
		return nil, false
	}
	return listed, true
}

// Set stores the listing with the configured TTL. Best effort.
func (c *RecentCache) Set(ctx context.Context, listed []*models.DeceasedPerson) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(listed)
	if err != nil {
		c.logger.WarnContext(ctx, "recent cache marshal failed", "error", err.Error())
		return
	}
	if err := c.client.Set(ctx, recentKey, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "recent cache write failed", "error", err.Error())
	}
}

// Invalidate drops the cached listing. Best effort; the TTL bounds staleness
// if the delete is lost.
func (c *RecentCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, recentKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "recent cache invalidation failed", "error", err.Error())
	}
}
