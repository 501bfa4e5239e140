// Package cache provides an optional Redis-backed cache for rendered
// recommendation responses. Failures degrade to cache misses; the engine
// result is always recomputable.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "recommend:"

// RecommendationCache stores rendered response payloads keyed by corpus
// fingerprint and normalized request parameters. A nil *RecommendationCache
// or one built without a client is a no-op.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New returns a cache over the given client. client may be nil, which
// disables caching entirely.
func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RecommendationCache {
	return &RecommendationCache{client: client, ttl: ttl, logger: logger}
}

// Enabled reports whether a Redis client is attached.
func (c *RecommendationCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Key builds a deterministic cache key. The corpus fingerprint keeps
// replicas that share Redis from mixing different datasets; query casing,
// spacing and filter order do not affect the key.
func (c *RecommendationCache) Key(fingerprint, query string, count int, excludeAllergens, cuisines []string) string {
	normalizedQuery := strings.Join(strings.Fields(strings.ToLower(query)), " ")

	raw := fmt.Sprintf("%s|%s|%d|%s|%s",
		fingerprint,
		normalizedQuery,
		count,
		normalizeSet(excludeAllergens),
		normalizeSet(cuisines),
	)
	sum := sha256.Sum256([]byte(raw))
	return keyPrefix + hex.EncodeToString(sum[:])[:32]
}

func normalizeSet(values []string) string {
	if len(values) == 0 {
		return ""
	}
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			normalized = append(normalized, v)
		}
	}
	sort.Strings(normalized)
	return strings.Join(normalized, ",")
}

// Ping checks the Redis connection. It reports nil when caching is
// disabled, since there is nothing to reach.
func (c *RecommendationCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Get returns the cached payload for key, if any.
func (c *RecommendationCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("recommendation cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores the payload under key with the configured TTL.
func (c *RecommendationCache) Set(ctx context.Context, key string, payload []byte) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("recommendation cache write failed", zap.Error(err))
	}
}
