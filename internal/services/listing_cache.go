package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingVersionKey = "listings:ver"

// ListingCache is a namespace-versioned response cache for the public product
// listing. Writes never delete keys; they bump the version so stale entries simply
// expire. A nil Redis client disables caching entirely.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListingCache(rdb *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{rdb: rdb, ttl: ttl}
}

func (c *ListingCache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Key derives the versioned cache key for a normalized filter string.
func (c *ListingCache) Key(ctx context.Context, filters string) string {
	if !c.enabled() {
		return ""
	}
	ver, err := c.rdb.Get(ctx, listingVersionKey).Result()
	if err != nil {
		ver = "0"
	}
	sum := sha1.Sum([]byte(filters))
	return "listings:v" + ver + ":" + hex.EncodeToString(sum[:])
}

func (c *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.enabled() || key == "" {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *ListingCache) Set(ctx context.Context, key string, payload []byte) {
	if !c.enabled() || key == "" {
		return
	}
	c.rdb.Set(ctx, key, payload, c.ttl)
}

// Invalidate bumps the namespace version; every cached listing becomes unreachable.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	c.rdb.Incr(ctx, listingVersionKey)
}
