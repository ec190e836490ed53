package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is a process-local Locker with the same try-once, expiry-only
// semantics as RedisLocker. It backs single-instance deployments that run
// without Redis, and tests.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]time.Time

	now func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		held: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (l *MemoryLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if expiry, ok := l.held[key]; ok && now.Before(expiry) {
		return false, nil
	}
	l.held[key] = now.Add(ttl)
	return true, nil
}
