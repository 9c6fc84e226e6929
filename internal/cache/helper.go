package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs for cached read-path entries. Post listings churn with every write
// so they get the shorter window.
const (
	PostTTL     = 5 * time.Minute
	PostListTTL = 30 * time.Second
)

const postListKeyPrefix = "posts:list:"

// PostKey returns the cache key for a single post aggregate.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// PostListKey returns the cache key for a post listing under a sort policy.
func PostListKey(sort string, limit, offset int) string {
	return fmt.Sprintf("%s%s:%d:%d", postListKeyPrefix, sort, limit, offset)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which should populate
// dest), then stores the result in Redis with ttl. fetch must write into dest.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	// Fetch from source (DB)
	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// InvalidatePost drops the cached aggregate for a single post.
func InvalidatePost(ctx context.Context, id uint) {
	if client == nil {
		return
	}
	client.Del(ctx, PostKey(id))
}

// InvalidatePostLists drops all cached post listings. Called on every
// post, comment, or like insert since each changes some listing.
func InvalidatePostLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, postListKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
