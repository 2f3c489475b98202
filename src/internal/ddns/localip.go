package ddns

import (
	"fmt"
	"net/netip"

	"github.com/campusnet/autoconnect/src/internal/errors"
)

// LocalIP returns the first IPv4 address assigned to the named interface.
// A missing interface or one without IPv4 is a DdnsError. Platforms without
// an address lookup strategy report UnsupportedPlatformError.
func LocalIP(name string) (netip.Addr, error) {
	addrs, err := interfaceAddrs(name)
	if err != nil {
		return netip.Addr{}, err
	}
	for _, addr := range addrs {
		if addr.Is4() || addr.Is4In6() {
			return addr.Unmap(), nil
		}
	}
	return netip.Addr{}, errors.NewDDNSError(fmt.Sprintf("interface %s has no IPv4 address", name), nil)
}

// InterfaceResolver looks up the address published for an interface. LocalIP satisfies it via InterfaceResolverFunc.
type InterfaceResolver interface {
	LocalIP(name string) (netip.Addr, error)
}

type InterfaceResolverFunc func(name string) (netip.Addr, error)

func (f InterfaceResolverFunc) LocalIP(name string) (netip.Addr, error) {
	return f(name)
}

// SystemInterfaces resolves addresses of the host's interfaces.
var SystemInterfaces InterfaceResolver = InterfaceResolverFunc(LocalIP)
