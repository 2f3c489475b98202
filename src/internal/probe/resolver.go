package probe

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

const defaultDNSPort = "53"

// Resolver resolves a host name to IPv4 addresses.
// Implementations report every lookup failure as *net.DNSError.
type Resolver interface {
	LookupIPv4(ctx context.Context, host string) ([]netip.Addr, error)
}

// SystemResolver uses the operating system's resolver configuration.
type SystemResolver struct {
	resolver *net.Resolver
}

func NewSystemResolver() *SystemResolver {
	return &SystemResolver{resolver: net.DefaultResolver}
}

func (r *SystemResolver) LookupIPv4(ctx context.Context, host string) ([]netip.Addr, error) {
	addrs, err := r.resolver.LookupNetIP(ctx, "ip4", host)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return nil, dnsErr
		}
		return nil, &net.DNSError{Err: err.Error(), Name: host, IsTimeout: isTimeout(err)}
	}
	return addrs, nil
}

// DNSResolver queries a single nameserver directly, bypassing /etc/resolv.conf.
// Useful when the system resolver points at a gateway-intercepted address.
type DNSResolver struct {
	server string
	client *dns.Client
}

func NewDNSResolver(server string, timeout time.Duration) *DNSResolver {
	host := server
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, defaultDNSPort)
	}

	return &DNSResolver{
		server: host,
		client: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		},
	}
}

func (r *DNSResolver) LookupIPv4(ctx context.Context, host string) ([]netip.Addr, error) {
	req := new(dns.Msg)
	req.SetQuestion(dns.Fqdn(host), dns.TypeA)
	req.RecursionDesired = true

	resp, _, err := r.client.ExchangeContext(ctx, req, r.server)
	if err != nil {
		return nil, &net.DNSError{Err: err.Error(), Name: host, Server: r.server, IsTimeout: isTimeout(err)}
	}

	if resp.Rcode != dns.RcodeSuccess {
		return nil, &net.DNSError{
			Err:        dns.RcodeToString[resp.Rcode],
			Name:       host,
			Server:     r.server,
			IsNotFound: resp.Rcode == dns.RcodeNameError,
		}
	}

	var addrs []netip.Addr
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			if addr, ok := netip.AddrFromSlice(a.A.To4()); ok {
				addrs = append(addrs, addr)
			}
		}
	}
	if len(addrs) == 0 {
		return nil, &net.DNSError{Err: "no such host", Name: host, Server: r.server, IsNotFound: true}
	}

	return addrs, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}
