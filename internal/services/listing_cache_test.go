package services

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewListingCache(rdb, time.Minute), mr
}

func TestListingCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key := cache.Key(ctx, "category=saree")
	if key == "" {
		t.Fatalf("expected non-empty key")
	}

	if _, ok := cache.Get(ctx, key); ok {
		t.Fatalf("expected miss on cold cache")
	}

	payload := []byte(`[{"name":"test"}]`)
	cache.Set(ctx, key, payload)

	got, ok := cache.Get(ctx, key)
	if !ok {
		t.Fatalf("expected hit after Set")
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: %s", got)
	}
}

func TestListingCacheKeyPerFilterSet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	a := cache.Key(ctx, "category=saree")
	b := cache.Key(ctx, "category=dupatta")
	if a == b {
		t.Fatalf("different filters must map to different keys")
	}
	if a != cache.Key(ctx, "category=saree") {
		t.Fatalf("key derivation must be stable")
	}
}

func TestInvalidateRotatesNamespace(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key := cache.Key(ctx, "category=saree")
	cache.Set(ctx, key, []byte("[]"))

	cache.Invalidate(ctx)

	rotated := cache.Key(ctx, "category=saree")
	if rotated == key {
		t.Fatalf("expected version bump to change the key")
	}
	if _, ok := cache.Get(ctx, rotated); ok {
		t.Fatalf("expected miss under the new namespace")
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var cache *ListingCache
	ctx := context.Background()

	if key := cache.Key(ctx, "anything"); key != "" {
		t.Fatalf("nil cache must yield empty keys")
	}
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Fatalf("nil cache must never hit")
	}
	// Set and Invalidate must be no-ops, not panics.
	cache.Set(ctx, "k", []byte("v"))
	cache.Invalidate(ctx)
}
