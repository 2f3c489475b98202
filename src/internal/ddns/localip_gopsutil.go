//go:build darwin || windows || freebsd || openbsd || netbsd

package ddns

import (
	"fmt"
	"net/netip"

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/campusnet/autoconnect/src/internal/errors"
)

func interfaceAddrs(name string) ([]netip.Addr, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return nil, errors.NewDDNSError("failed to list interfaces", err)
	}

	for _, iface := range ifaces {
		if iface.Name != name {
			continue
		}
		var ips []netip.Addr
		for _, addr := range iface.Addrs {
			if prefix, err := netip.ParsePrefix(addr.Addr); err == nil {
				ips = append(ips, prefix.Addr())
			} else if ip, err := netip.ParseAddr(addr.Addr); err == nil {
				ips = append(ips, ip)
			}
		}
		return ips, nil
	}

	return nil, errors.NewDDNSError(fmt.Sprintf("interface %s not found", name), nil)
}
