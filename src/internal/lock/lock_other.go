//go:build !unix

package lock

import "github.com/campusnet/autoconnect/src/internal/log"

// Lock is a no-op on platforms without flock(2); runs must be serialized by the scheduler.
type Lock struct{}

func Acquire(path string) (*Lock, error) {
	log.Debugf("Run lock %s not supported on this platform", path)
	return &Lock{}, nil
}

func (l *Lock) Release() error {
	return nil
}
