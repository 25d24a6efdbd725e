package cron

import (
	"context"
	"sync"
)

// Lock coordinates exclusive sweep cycles.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// MutexLock is an in-process Lock. The server runs as a single process, so
// mutual exclusion only has to hold between the ticker and any manually
// triggered cycle.
type MutexLock struct {
	mu sync.Mutex
}

// NewMutexLock constructs an in-process lock.
func NewMutexLock() *MutexLock {
	return &MutexLock{}
}

// Acquire reports whether the lock was free.
func (l *MutexLock) Acquire(_ context.Context) (bool, error) {
	return l.mu.TryLock(), nil
}

// Release frees the lock.
func (l *MutexLock) Release(_ context.Context) error {
	l.mu.Unlock()
	return nil
}
