package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/pkg/cache"
)

// ParticipantLocker serializes ledger writes per participant.
// Unlock must be called exactly once after a successful Lock.
type ParticipantLocker interface {
	Lock(ctx context.Context, participantIDs ...string) (unlock func(), err error)
}

// lockOrder returns the distinct ids sorted, so that two callers locking the
// same pair always acquire in the same order.
func lockOrder(ids []string) []string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// keyedMutex is an in-process ParticipantLocker.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

// NewLocalParticipantLocker returns a locker that only serializes within this process.
func NewLocalParticipantLocker() ParticipantLocker {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) Lock(ctx context.Context, participantIDs ...string) (func(), error) {
	ids := lockOrder(participantIDs)
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			k.release(ids[:i])
			return nil, fmt.Errorf("lock participant %s: %w", id, err)
		}
		k.acquire(id)
	}
	var once sync.Once
	return func() { once.Do(func() { k.release(ids) }) }, nil
}

func (k *keyedMutex) acquire(id string) {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
}

func (k *keyedMutex) release(ids []string) {
	for i := len(ids) - 1; i >= 0; i-- {
		k.mu.Lock()
		m := k.locks[ids[i]]
		m.refs--
		if m.refs == 0 {
			delete(k.locks, ids[i])
		}
		k.mu.Unlock()
		m.Unlock()
	}
}

// redisParticipantLocker serializes across processes through Redis leases.
type redisParticipantLocker struct {
	locker *cache.Locker
	ttl    time.Duration
}

// NewRedisParticipantLocker returns a locker backed by Redis. ttl bounds both the
// lease and the time spent waiting for it.
func NewRedisParticipantLocker(locker *cache.Locker, ttl time.Duration) ParticipantLocker {
	return &redisParticipantLocker{locker: locker, ttl: ttl}
}

func (r *redisParticipantLocker) Lock(ctx context.Context, participantIDs ...string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, r.ttl)
	defer cancel()

	ids := lockOrder(participantIDs)
	held := make([]*cache.Lock, 0, len(ids))
	releaseAll := func() {
		for i := len(held) - 1; i >= 0; i-- {
			// The request context may already be cancelled; releasing must still happen.
			if err := held[i].Release(context.WithoutCancel(ctx)); err != nil {
				slog.Default().Warn("Failed to release participant lock", slog.String("error", err.Error()))
			}
		}
	}

	for _, id := range ids {
		lock, err := r.locker.Acquire(waitCtx, id, r.ttl)
		if err != nil {
			releaseAll()
			return nil, apperrors.NewAppError(503, "participant is busy, retry later", err)
		}
		held = append(held, lock)
	}

	var once sync.Once
	return func() { once.Do(releaseAll) }, nil
}
