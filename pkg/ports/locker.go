package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes work on one session across replicas that
// share a store. The in-process mutex in the session manager only covers a
// single instance.
type DistributedLocker interface {
	// Lock blocks until the lock for key (a session ID) is held or ctx is done.
	// The lock expires after ttl so that a crashed holder cannot wedge a session.
	// The returned UnlockFunc must be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
