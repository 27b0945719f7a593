package keylock

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrTimeout is returned when a lock could not be acquired within the
// configured bound.
var ErrTimeout = errors.New("keylock: acquire timed out")

// KeyLock serializes mutations per key (one key per user id). Every
// preference mutation path acquires the owner's lock before its
// read-modify-write transaction, so concurrent mutators of the same user
// serialize while different users proceed in parallel.
type KeyLock struct {
	mu      sync.Mutex
	locks   map[string]chan struct{}
	maxWait time.Duration
}

func New(maxWait time.Duration) *KeyLock {
	if maxWait <= 0 {
		maxWait = 5 * time.Second
	}
	return &KeyLock{
		locks:   make(map[string]chan struct{}),
		maxWait: maxWait,
	}
}

func (k *KeyLock) channel(key string) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	ch, ok := k.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		k.locks[key] = ch
	}
	return ch
}

// Acquire blocks until the key's lock is held, the context is done, or
// the bounded wait expires.
func (k *KeyLock) Acquire(ctx context.Context, key string) error {
	timer := time.NewTimer(k.maxWait)
	defer timer.Stop()

	select {
	case k.channel(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTimeout
	}
}

// Release frees the key's lock. Releasing an unheld lock is a no-op.
func (k *KeyLock) Release(key string) {
	select {
	case <-k.channel(key):
	default:
	}
}

// AcquireAll takes multiple locks in sorted key order so that two
// cross-user operations touching overlapping member sets cannot
// deadlock. On any failure the locks already taken are released.
func (k *KeyLock) AcquireAll(ctx context.Context, keys []string) error {
	ordered := append([]string(nil), keys...)
	sort.Strings(ordered)

	held := make([]string, 0, len(ordered))
	for _, key := range ordered {
		if err := k.Acquire(ctx, key); err != nil {
			for _, h := range held {
				k.Release(h)
			}
			return err
		}
		held = append(held, key)
	}
	return nil
}

// ReleaseAll frees every key acquired by AcquireAll.
func (k *KeyLock) ReleaseAll(keys []string) {
	for _, key := range keys {
		k.Release(key)
	}
}
