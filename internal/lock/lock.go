// Package lock provides advisory file locking for report output.
package lock

import (
	"context"
	"errors"
	"os"

	"github.com/gofrs/flock"

	"github.com/erraggy/netexval/internal/fileutil"
	"github.com/erraggy/netexval/netexerrors"
)

// ErrAlreadyLocked is the cause of the retryable error returned when another
// process holds the lock.
var ErrAlreadyLocked = errors.New("report file is locked by another process")

// Suffix is appended to a report path to name its lock file.
const Suffix = ".lock"

// Flocker abstracts the subset of flock.Flock used for advisory locking.
type Flocker interface {
	TryLock() (bool, error)
	Unlock() error
}

// Lock wraps a Flocker to provide fail-fast advisory locking.
type Lock struct {
	flocker Flocker
}

// New creates a Lock from the given Flocker.
func New(f Flocker) *Lock {
	return &Lock{flocker: f}
}

// ForFile creates a Lock guarding the file at path.
func ForFile(path string) *Lock {
	return New(flock.New(path + Suffix))
}

// TryLock attempts a non-blocking lock acquisition. Contention is a retryable
// error; any other failure is fatal.
func (l *Lock) TryLock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ok, err := l.flocker.TryLock()
	if err != nil {
		return netexerrors.Fatalf("lock.TryLock", errors.Join(netexerrors.ErrInput, err), "acquiring lock")
	}
	if !ok {
		return netexerrors.Retryable("lock.TryLock", ErrAlreadyLocked)
	}
	return nil
}

// Unlock releases the advisory lock.
func (l *Lock) Unlock() error {
	if err := l.flocker.Unlock(); err != nil {
		return netexerrors.Fatalf("lock.Unlock", errors.Join(netexerrors.ErrInput, err), "releasing lock")
	}
	return nil
}

// WriteFile writes data to path while holding the lock of path.
func WriteFile(ctx context.Context, path string, data []byte) (err error) {
	l := ForFile(path)
	if err := l.TryLock(ctx); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, l.Unlock())
	}()

	if err := os.WriteFile(path, data, fileutil.OwnerReadWrite); err != nil {
		return netexerrors.Fatalf("lock.WriteFile", errors.Join(netexerrors.ErrInput, err), "writing %s", path)
	}
	return nil
}
