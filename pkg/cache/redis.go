package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key.
	Prefix string

	// Retry governs transient network failures.
	Retry Backoff
}

// RedisCache stores entries in Redis with native key expiry.
type RedisCache struct {
	client *redis.Client
	prefix string
	retry  Backoff
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	c := &RedisCache{client: client, prefix: cfg.Prefix, retry: cfg.Retry}
	if err := c.do(ctx, func() error { return client.Ping(ctx).Err() }); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return c, nil
}

// do runs fn, retrying network errors only.
func (c *RedisCache) do(ctx context.Context, fn func() error) error {
	return c.retry.Do(ctx, func() error {
		err := fn()
		var netErr net.Error
		if err != nil && errors.As(err, &netErr) {
			return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
		}
		return err
	})
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.do(ctx, func() error {
		var err error
		data, err = c.client.Get(ctx, c.prefix+key).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.do(ctx, func() error {
		return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
	})
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.do(ctx, func() error {
		return c.client.Del(ctx, c.prefix+key).Err()
	})
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
