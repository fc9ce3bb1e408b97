package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-runner/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	lockSuffix = ":compute_lock"
	lockExpiry = 10 * time.Second
)

// RedisResultCache memoizes computed values in Redis with a TTL.
type RedisResultCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

var _ i.ResultCache = (*RedisResultCache)(nil)

// NewRedisResultCache creates a RedisResultCache whose entries live ttlSeconds.
func NewRedisResultCache(client *redis.Client, ttlSeconds int) (*RedisResultCache, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %d", ttlSeconds)
	}

	return &RedisResultCache{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Do returns the cached value of key or computes and stores it. A distributed lock
// keeps concurrent misses on the same key from computing twice.
func (c *RedisResultCache) Do(ctx context.Context, key string, compute func() ([]byte, error)) ([]byte, error) {
	if val, ok, err := c.get(ctx, key); err != nil || ok {
		return val, err
	}

	mutex := c.locker.NewMutex(key+lockSuffix, redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("locking %s: %w", key, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	// Another holder of the lock may have filled the entry.
	if val, ok, err := c.get(ctx, key); err != nil || ok {
		return val, err
	}

	val, err := compute()
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return nil, fmt.Errorf("storing %s: %w", key, err)
	}
	return val, nil
}

func (c *RedisResultCache) get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return val, true, nil
}
