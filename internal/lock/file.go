package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// retryDelay is how often FileLock polls while waiting.
const retryDelay = 100 * time.Millisecond

// FileLock is an flock(2) lock on a file next to a SQLite store.
type FileLock struct {
	lock *flock.Flock
}

// NewFileLock creates a lock on path. The file is created on first acquire.
func NewFileLock(path string) *FileLock {
	return &FileLock{lock: flock.New(path)}
}

// NewStoreLock returns the lock file used for a SQLite database path.
func NewStoreLock(dbPath string) *FileLock {
	return NewFileLock(dbPath + ".lock")
}

// Acquire takes the lock, polling for up to timeoutSeconds. A zero timeout
// tries once.
func (f *FileLock) Acquire(ctx context.Context, timeoutSeconds int) (bool, error) {
	if f.lock.Locked() {
		return true, nil
	}
	if timeoutSeconds <= 0 {
		ok, err := f.lock.TryLock()
		if err != nil {
			return false, fmt.Errorf("lock %s: %w", f.lock.Path(), err)
		}
		return ok, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()
	ok, err := f.lock.TryLockContext(waitCtx, retryDelay)
	if err != nil {
		if waitCtx.Err() != nil && ctx.Err() == nil {
			return false, nil
		}
		return false, fmt.Errorf("lock %s: %w", f.lock.Path(), err)
	}
	return ok, nil
}

// Release unlocks the file. Returns false if it was not held.
func (f *FileLock) Release(context.Context) (bool, error) {
	if !f.lock.Locked() {
		return false, nil
	}
	if err := f.lock.Unlock(); err != nil {
		return false, fmt.Errorf("unlock %s: %w", f.lock.Path(), err)
	}
	return true, nil
}

// Name returns the lock file path.
func (f *FileLock) Name() string {
	return f.lock.Path()
}
