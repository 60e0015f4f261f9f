package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "pathfinder"
	lockKeySuffix    = ":lock"
	defaultTTL       = 5 * time.Second
)

var (
	ErrMissingClient = errors.New("redis client is required")
	ErrMissingLogger = errors.New("logger is required")
)

var _ i.Locker = &RedisLocker{}

// RedisLocker serializes access across processes with redsync mutexes.
type RedisLocker struct {
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
	logger i.Logger
}

// NewRedisLocker initializes a RedisLocker with the provided Redis client and lock expiry.
// A non-positive ttlSeconds falls back to five seconds.
func NewRedisLocker(client *redis.Client, ttlSeconds int, logger i.Logger) (*RedisLocker, error) {
	if client == nil {
		return nil, ErrMissingClient
	}
	if logger == nil {
		return nil, ErrMissingLogger
	}

	ttl := defaultTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}

	pool := goredis.NewPool(client)
	return &RedisLocker{
		locker: redsync.New(pool),
		prefix: defaultKeyPrefix,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Lock implements i.Locker.
// A release that finds the lock already expired is logged: the holder outlived the TTL and
// another process may have entered the critical section.
func (rl *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutexKey := rl.prefix + ":" + key + lockKeySuffix
	mutex := rl.locker.NewMutex(mutexKey, redsync.WithExpiry(rl.ttl))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		ok, err := mutex.UnlockContext(context.Background())
		if err != nil {
			rl.logger.Error(fmt.Sprintf("error while releasing lock %s: %s", mutexKey, err.Error()))
			return
		}

		if !ok {
			rl.logger.Error(fmt.Sprintf("error while releasing lock %s: %s", mutexKey, "redis eval func returned 0 while releasing"))
		}
	}, nil
}
