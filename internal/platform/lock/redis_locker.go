// Package lock provides the distributed lock used to keep retention sweeps
// for one owner from running concurrently across instances.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/ports"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

type RedisLocker struct {
	client *redislock.Client
}

// NewRedisLocker wraps a go-redis client in a redislock client.
func NewRedisLocker(rdb redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

var _ ports.Locker = (*RedisLocker)(nil)

// Obtain tries once to take key for ttl. A key held elsewhere yields
// ports.ErrLockNotObtained.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (ports.Lock, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ports.ErrLockNotObtained
		}
		return nil, err
	}
	return &redisLock{lock: lk}, nil
}

type redisLock struct {
	lock *redislock.Lock
}

// Release frees the lock. A lock that already expired is not an error.
func (r *redisLock) Release(ctx context.Context) error {
	if err := r.lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return err
	}
	return nil
}
