package lock

import (
	"context"
	"time"
)

// Locker provides try-once mutual exclusion with TTL expiry. There is no
// release operation: a held key frees itself when its TTL lapses, which keeps
// a key covered past the end of the request that acquired it.
type Locker interface {
	// TryAcquire attempts to take key for ttl. It returns false when the key
	// is already held and never blocks or retries. An error means the lock
	// backend itself failed, not contention.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
