package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/log"
)

// Result is the outcome of probing a single reference host.
type Result int

const (
	Unreachable Result = iota
	Reachable
)

func (r Result) String() string {
	if r == Reachable {
		return "reachable"
	}
	return "unreachable"
}

// Dialer opens TCP connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Prober checks a host by resolving it and opening a TCP connection to it.
type Prober struct {
	resolver Resolver
	dialer   Dialer
	port     uint16
	timeout  time.Duration
}

// NewProber builds a prober from the probe configuration.
func NewProber(cfg *config.ProbeConfig) *Prober {
	var resolver Resolver
	if cfg.Nameserver != "" {
		resolver = NewDNSResolver(cfg.Nameserver, cfg.Timeout())
	} else {
		resolver = NewSystemResolver()
	}
	return NewProberWith(resolver, &net.Dialer{}, cfg.Port, cfg.Timeout())
}

func NewProberWith(resolver Resolver, dialer Dialer, port uint16, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = config.DefaultProbeTimeout
	}
	if port == 0 {
		port = config.DefaultProbePort
	}
	return &Prober{
		resolver: resolver,
		dialer:   dialer,
		port:     port,
		timeout:  timeout,
	}
}

// Probe resolves host and connects to it. Expected failures (resolution
// failure, refused or timed out connection, unreachable network) yield
// Unreachable with a nil error. Anything else is returned to the caller.
func (p *Prober) Probe(ctx context.Context, host string) (Result, error) {
	result, err := p.probe(ctx, host)
	if err != nil {
		log.Detailf("%s could not be probed: %v", host, err)
		return Unreachable, err
	}
	if result == Reachable {
		log.Infof("%s is available", host)
	} else {
		log.Infof("%s is NOT available", host)
	}
	return result, nil
}

func (p *Prober) probe(ctx context.Context, host string) (Result, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	addrs, err := p.resolver.LookupIPv4(lookupCtx, host)
	if err != nil {
		if isExpectedFailure(ctx, err) {
			log.Debugf("%s: resolution failed: %v", host, err)
			return Unreachable, nil
		}
		return Unreachable, fmt.Errorf("resolve %s: %w", host, err)
	}
	if len(addrs) == 0 {
		log.Debugf("%s: resolved to no IPv4 address", host)
		return Unreachable, nil
	}

	dialCtx, cancelDial := context.WithTimeout(ctx, p.timeout)
	defer cancelDial()

	address := net.JoinHostPort(addrs[0].String(), strconv.Itoa(int(p.port)))
	conn, err := p.dialer.DialContext(dialCtx, "tcp", address)
	if err != nil {
		if isExpectedFailure(ctx, err) {
			log.Debugf("%s: connect to %s failed: %v", host, address, err)
			return Unreachable, nil
		}
		return Unreachable, fmt.Errorf("connect %s: %w", address, err)
	}
	_ = conn.Close()

	return Reachable, nil
}

// isExpectedFailure classifies the failure modes that mean "host not reachable".
// Cancellation of the parent context is not one of them.
func isExpectedFailure(parent context.Context, err error) bool {
	if parent.Err() != nil {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if isTimeout(err) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
