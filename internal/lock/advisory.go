// Package lock keeps two publishers from rewriting the same job's pair list
// at once.
package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrLockTimeout is returned when lock acquisition times out because
// another instance is holding the lock.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Common timeout values for lock acquisition (in seconds).
const (
	// TimeoutImmediate returns immediately if lock cannot be acquired.
	TimeoutImmediate = 0
	// TimeoutShort is suitable for fast-failing duplicate publish detection.
	TimeoutShort = 1
	// TimeoutMedium provides a reasonable wait for transient conflicts.
	TimeoutMedium = 10
)

// Locker is implemented by AdvisoryLock and FileLock.
type Locker interface {
	Acquire(ctx context.Context, timeoutSeconds int) (bool, error)
	Release(ctx context.Context) (bool, error)
	Name() string
}

// AdvisoryLock is a MySQL GET_LOCK() lock. MySQL named locks belong to a
// session, so the lock pins one pooled connection from Acquire to Release.
type AdvisoryLock struct {
	db       *sql.DB
	conn     *sql.Conn
	lockName string
}

// NewAdvisoryLock creates a new advisory lock with the given name.
// The lock is not acquired until Acquire is called.
func NewAdvisoryLock(db *sql.DB, lockName string) *AdvisoryLock {
	return &AdvisoryLock{db: db, lockName: lockName}
}

// Acquire attempts to take the lock, waiting up to timeoutSeconds.
// Returns true if the lock was acquired, false if timeout was reached.
//
// MySQL GET_LOCK() return values:
//   - 1: Lock was obtained successfully
//   - 0: Timeout was reached without obtaining the lock
//   - NULL: An error occurred (e.g., out of memory, thread killed)
func (a *AdvisoryLock) Acquire(ctx context.Context, timeoutSeconds int) (bool, error) {
	if a.conn != nil {
		return true, nil
	}

	conn, err := a.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to reserve connection for lock %q: %w", a.lockName, err)
	}

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", a.lockName, timeoutSeconds).Scan(&result); err != nil {
		conn.Close()
		return false, fmt.Errorf("failed to execute GET_LOCK: %w", err)
	}

	if !result.Valid {
		conn.Close()
		return false, fmt.Errorf("GET_LOCK returned NULL for lock %q (possible database error)", a.lockName)
	}

	switch result.Int64 {
	case 1:
		a.conn = conn
		return true, nil
	case 0:
		conn.Close()
		return false, nil
	default:
		conn.Close()
		return false, fmt.Errorf("unexpected GET_LOCK return value: %d", result.Int64)
	}
}

// Release releases the lock and returns the pinned connection to the pool.
// Returns false if the lock was not held.
//
// MySQL RELEASE_LOCK() return values:
//   - 1: Lock was released successfully
//   - 0: Lock was not established by this session
//   - NULL: Named lock did not exist
func (a *AdvisoryLock) Release(ctx context.Context) (bool, error) {
	if !a.IsHeld() {
		return false, nil
	}
	conn := a.conn
	a.conn = nil
	defer conn.Close()

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT RELEASE_LOCK(?)", a.lockName).Scan(&result); err != nil {
		return false, fmt.Errorf("failed to execute RELEASE_LOCK: %w", err)
	}
	if !result.Valid {
		return false, fmt.Errorf("RELEASE_LOCK returned NULL for lock %q (lock did not exist)", a.lockName)
	}

	switch result.Int64 {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected RELEASE_LOCK return value: %d", result.Int64)
	}
}

// IsHeld returns true if this lock is currently held by this instance.
func (a *AdvisoryLock) IsHeld() bool {
	return a.conn != nil
}

// Name returns the name of the advisory lock.
func (a *AdvisoryLock) Name() string {
	return a.lockName
}

// GenerateJobLockName creates a consistent lock name for a publish job.
// Example: GenerateJobLockName("clip 01") -> "framepairs:job:clip_01"
func GenerateJobLockName(jobName string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, jobName)

	// MySQL limits lock names to 64 characters
	name := "framepairs:job:" + sanitized
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}

// NewJobLock creates an advisory lock for a specific job.
func NewJobLock(db *sql.DB, jobName string) *AdvisoryLock {
	return NewAdvisoryLock(db, GenerateJobLockName(jobName))
}

// WithLock runs fn while holding l, releasing it even if fn panics.
// Returns ErrLockTimeout if the lock cannot be acquired within the timeout.
func WithLock(ctx context.Context, l Locker, timeoutSeconds int, fn func() error) error {
	acquired, err := l.Acquire(ctx, timeoutSeconds)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("%w: lock %q is held by another instance", ErrLockTimeout, l.Name())
	}

	defer func() {
		// release on a fresh context; ctx may already be canceled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = l.Release(releaseCtx)
	}()

	return fn()
}
