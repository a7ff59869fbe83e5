// Package cache provides the Redis client and read-through helpers.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"vibeshare/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// client is nil when Redis is unreachable or unconfigured; every helper
// treats a nil client as "no cache" and falls through to the source.
var client *redis.Client

// errorCounterHook increments the Redis error metric per failed command.
// redis.Nil is a cache miss, not an error.
type errorCounterHook struct{}

func (errorCounterHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (errorCounterHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (errorCounterHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

func parseAddr(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{Addr: addr}, nil
}

// InitRedis connects to Redis at addr, which may be a bare host:port or a
// redis:// URL. Failure leaves the cache disabled rather than failing
// startup; the service works without Redis, just slower.
func InitRedis(addr string) {
	opts, err := parseAddr(addr)
	if err != nil {
		middleware.Logger.Warn("invalid REDIS_URL, continuing without cache",
			"addr", addr, "error", err.Error())
		client = nil
		return
	}

	c := redis.NewClient(opts)
	c.AddHook(errorCounterHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("redis unreachable, continuing without cache",
			"error", err.Error())
		client = nil
		return
	}

	middleware.Logger.Info("redis connected")
	client = c
}

// GetClient returns the current Redis client, or nil when caching is off.
func GetClient() *redis.Client {
	return client
}

// SetClient swaps the client, used by tests to install a miniredis-backed client.
func SetClient(c *redis.Client) {
	client = c
}
