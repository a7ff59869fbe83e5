package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by GetJSON when the key is absent or caching is disabled.
var ErrCacheMiss = errors.New("cache miss")

// GetJSON fetches key and unmarshals the stored JSON into dest.
// A nil client (Redis unavailable) behaves like a miss.
func GetJSON(ctx context.Context, key string, dest any) error {
	if client == nil {
		return ErrCacheMiss
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON marshals value and stores it under key with the given TTL.
// No-op when Redis is unavailable.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, raw, ttl).Err()
}

// Aside implements the cache-aside pattern: fill dest from the cache when
// possible, otherwise run load (which must populate dest) and store the
// result best-effort.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if err := GetJSON(ctx, key, dest); err == nil {
		return nil
	}

	if err := load(); err != nil {
		return err
	}

	// Store failures degrade to uncached reads, they are not surfaced.
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}
