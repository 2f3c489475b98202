//go:build linux

package ddns

import (
	"fmt"
	"net/netip"

	"github.com/vishvananda/netlink"

	"github.com/campusnet/autoconnect/src/internal/errors"
)

func interfaceAddrs(name string) ([]netip.Addr, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return nil, errors.NewDDNSError(fmt.Sprintf("interface %s not found", name), err)
	}

	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return nil, errors.NewDDNSError(fmt.Sprintf("failed to list addresses of %s", name), err)
	}

	var ips []netip.Addr
	for _, addr := range addrs {
		if ip, ok := netip.AddrFromSlice(addr.IP); ok {
			ips = append(ips, ip)
		}
	}
	return ips, nil
}
