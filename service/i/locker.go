package i

import "context"

// Locker serializes access to a named resource.
type Locker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// The returned function releases the lock.
	Lock(ctx context.Context, key string) (func(), error)
}
