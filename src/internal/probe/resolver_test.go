package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// startMockNameserver answers A queries for known names and NXDOMAIN otherwise.
func startMockNameserver(t testing.TB, records map[string]string) (string, func()) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen packet: %v", err)
	}

	server := &dns.Server{
		PacketConn: pc,
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(r)
			m.RecursionAvailable = true

			name := r.Question[0].Name
			if ip, ok := records[name]; ok {
				rr, _ := dns.NewRR(fmt.Sprintf("%s 60 IN A %s", name, ip))
				m.Answer = append(m.Answer, rr)
			} else {
				m.Rcode = dns.RcodeNameError
			}

			w.WriteMsg(m)
		}),
	}

	started := make(chan struct{})
	server.NotifyStartedFunc = func() { close(started) }
	go func() {
		server.ActivateAndServe()
	}()
	<-started

	return pc.LocalAddr().String(), func() {
		server.Shutdown()
	}
}

func TestDNSResolver_LookupIPv4(t *testing.T) {
	addr, stop := startMockNameserver(t, map[string]string{"www.pku.edu.cn.": "162.105.131.160"})
	defer stop()

	r := NewDNSResolver(addr, 2*time.Second)

	addrs, err := r.LookupIPv4(context.Background(), "www.pku.edu.cn")
	if err != nil {
		t.Fatalf("LookupIPv4() error: %v", err)
	}
	if len(addrs) != 1 || addrs[0].String() != "162.105.131.160" {
		t.Errorf("LookupIPv4() = %v", addrs)
	}
}

func TestDNSResolver_NXDomain(t *testing.T) {
	addr, stop := startMockNameserver(t, nil)
	defer stop()

	r := NewDNSResolver(addr, 2*time.Second)

	_, err := r.LookupIPv4(context.Background(), "missing.example")
	var dnsErr *net.DNSError
	if !errors.As(err, &dnsErr) {
		t.Fatalf("Expected *net.DNSError, got: %v", err)
	}
	if !dnsErr.IsNotFound {
		t.Errorf("Expected IsNotFound, got %+v", dnsErr)
	}
}

func TestNewDNSResolver_DefaultPort(t *testing.T) {
	if r := NewDNSResolver("162.105.129.26", time.Second); r.server != "162.105.129.26:53" {
		t.Errorf("server = %s", r.server)
	}
	if r := NewDNSResolver("127.0.0.1:5353", time.Second); r.server != "127.0.0.1:5353" {
		t.Errorf("server = %s", r.server)
	}
}
