//go:build unix

// Package lock serializes agent runs with an advisory lock file next to the status file.
package lock

import (
	stderrors "errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/campusnet/autoconnect/src/internal/errors"
	"github.com/campusnet/autoconnect/src/internal/log"
)

// Lock is an exclusive flock(2) held for the duration of a run.
type Lock struct {
	file *os.File
}

// Acquire takes the lock without blocking. If another run holds it a StatusError is returned.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, errors.NewStatusError("failed to open lock file", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if stderrors.Is(err, unix.EWOULDBLOCK) {
			return nil, errors.NewStatusError(fmt.Sprintf("another run holds %s", path), nil)
		}
		return nil, errors.NewStatusError("failed to lock status file", err)
	}

	log.Debugf("Acquired run lock %s", path)
	return &Lock{file: f}, nil
}

// Release drops the lock. The lock file itself is left in place.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}
