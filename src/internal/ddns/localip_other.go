//go:build !linux && !darwin && !windows && !freebsd && !openbsd && !netbsd

package ddns

import (
	"net/netip"
	"runtime"

	"github.com/campusnet/autoconnect/src/internal/errors"
)

func interfaceAddrs(name string) ([]netip.Addr, error) {
	return nil, errors.NewUnsupportedPlatformError(runtime.GOOS)
}
