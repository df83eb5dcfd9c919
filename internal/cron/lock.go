package cron

import (
	"context"
	"sync/atomic"
)

// Lock coordinates exclusive scheduler cycles.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// LocalLock implements Lock with an in-process atomic flag. The process owns
// its embedded store, so there is no cross-instance coordination to do; the
// lock only guards against a cycle overrunning into the next tick.
type LocalLock struct {
	held atomic.Bool
}

// NewLocalLock constructs an in-process lock.
func NewLocalLock() *LocalLock {
	return &LocalLock{}
}

// Acquire takes the lock if it is free. It never blocks.
func (l *LocalLock) Acquire(_ context.Context) (bool, error) {
	return l.held.CompareAndSwap(false, true), nil
}

// Release frees the lock.
func (l *LocalLock) Release(_ context.Context) error {
	l.held.Store(false)
	return nil
}
