package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotHeld is returned by Release when the lock expired or was taken over.
var ErrLockNotHeld = errors.New("lock not owned by this token")

const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// Locker hands out short-lived exclusive locks stored in Redis.
type Locker struct {
	client     redis.Cmdable
	prefix     string
	retryEvery time.Duration
}

// Lock is a held lock. The zero value is not usable.
type Lock struct {
	client redis.Cmdable
	key    string
	token  string
}

// NewLocker creates a Locker. Keys are stored as "<prefix>:<resource>".
func NewLocker(client redis.Cmdable, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix, retryEvery: 25 * time.Millisecond}
}

// TryAcquire makes a single attempt. It reports false when another holder owns the lock.
func (l *Locker) TryAcquire(ctx context.Context, resource string, ttl time.Duration) (*Lock, bool, error) {
	key := fmt.Sprintf("%s:%s", l.prefix, resource)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &Lock{client: l.client, key: key, token: token}, true, nil
}

// Acquire polls until the lock is obtained or ctx is done.
func (l *Locker) Acquire(ctx context.Context, resource string, ttl time.Duration) (*Lock, error) {
	ticker := time.NewTicker(l.retryEvery)
	defer ticker.Stop()

	for {
		lock, ok, err := l.TryAcquire(ctx, resource, ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			return lock, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w", resource, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Release deletes the lock only if it is still held with this lock's token.
func (l *Lock) Release(ctx context.Context) error {
	n, err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}
