package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DistributedLock serializes proposal runs against the same safe. Two
// concurrent runs would resolve the same next nonce and race to submit
// colliding proposals, so the pipeline takes this lock from nonce resolution
// through submission.
type DistributedLock interface {
	// Acquire tries to take the lock, returning false if it is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release drops the lock.
	Release(ctx context.Context, key string) error
}

// RedisLock implements DistributedLock with a plain SETNX.
type RedisLock struct {
	client *redis.Client
}

func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{client: client}
}

func (l *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	// SET key value NX EX ttl. The value is not used for ownership checks;
	// runs are short-lived and the TTL bounds a crashed holder.
	success, err := l.client.SetNX(ctx, "proposer:lock:"+key, "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return success, nil
}

func (l *RedisLock) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, "proposer:lock:"+key).Err()
}
