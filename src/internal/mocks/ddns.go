package mocks

import (
	"context"
	"net/netip"

	"github.com/campusnet/autoconnect/src/internal/status"
)

// MockUpdater is a mock implementation of the DDNS updater.
type MockUpdater struct {
	// UpdateFunc is called by Update if not nil
	UpdateFunc func(ctx context.Context, ip netip.Addr, st *status.Status) error

	// Track calls for verification in tests
	UpdateCalls int
	UpdatedIPs  []netip.Addr
}

// Update submits ip.
func (m *MockUpdater) Update(ctx context.Context, ip netip.Addr, st *status.Status) error {
	m.UpdateCalls++
	m.UpdatedIPs = append(m.UpdatedIPs, ip)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ip, st)
	}
	return nil
}

// NewMockUpdater creates a new mock updater with default behavior.
func NewMockUpdater() *MockUpdater {
	return &MockUpdater{}
}

// MockInterfaces is a mock interface address resolver.
type MockInterfaces struct {
	// LocalIPFunc is called by LocalIP if not nil
	LocalIPFunc func(name string) (netip.Addr, error)

	// Addrs maps interface name to its address when LocalIPFunc is nil
	Addrs map[string]netip.Addr

	// Track calls for verification in tests
	LocalIPCalls int
}

// LocalIP returns the configured address of the interface.
func (m *MockInterfaces) LocalIP(name string) (netip.Addr, error) {
	m.LocalIPCalls++
	if m.LocalIPFunc != nil {
		return m.LocalIPFunc(name)
	}
	return m.Addrs[name], nil
}

// NewMockInterfaces creates a resolver that knows the given interface address.
func NewMockInterfaces(name string, addr netip.Addr) *MockInterfaces {
	return &MockInterfaces{Addrs: map[string]netip.Addr{name: addr}}
}
