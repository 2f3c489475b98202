package mocks

import (
	"context"
	"errors"
	"net/netip"
	"testing"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/probe"
	"github.com/campusnet/autoconnect/src/internal/status"
)

// TestMockChecker_ReportQueue tests that reports are served in order and the last one repeats
func TestMockChecker_ReportQueue(t *testing.T) {
	first := probe.Report{Network: true}
	second := probe.Report{Network: true, CernetFree: true}
	mock := NewMockChecker(first, second)

	for i, want := range []probe.Report{first, second, second} {
		got, err := mock.Check(context.Background())
		if err != nil {
			t.Fatalf("Check #%d: unexpected error: %v", i, err)
		}
		if got != want {
			t.Errorf("Check #%d = %+v, want %+v", i, got, want)
		}
	}
	if mock.CheckCalls != 3 {
		t.Errorf("Expected 3 calls, got %d", mock.CheckCalls)
	}
}

// TestMockChecker_DefaultBehavior tests that an unconfigured checker reports full reachability
func TestMockChecker_DefaultBehavior(t *testing.T) {
	report, err := NewMockChecker().Check(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !report.Satisfies(config.ScopeGlobal) {
		t.Errorf("Expected global scope to be satisfied, got %+v", report)
	}
}

// TestMockGateway_TracksCalls tests call recording and custom behavior
func TestMockGateway_TracksCalls(t *testing.T) {
	mock := NewMockGateway()
	expectedErr := errors.New("agent failed")
	mock.ConnectFunc = func(ctx context.Context, scope config.Scope, st *status.Status) error {
		return expectedErr
	}

	if err := mock.Disconnect(context.Background(), true); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if err := mock.Connect(context.Background(), config.ScopeCernetFree, nil); err != expectedErr {
		t.Errorf("Expected custom error, got: %v", err)
	}

	if mock.DisconnectCalls != 1 || !mock.DisconnectAll[0] {
		t.Errorf("Unexpected disconnect tracking: %d %v", mock.DisconnectCalls, mock.DisconnectAll)
	}
	if mock.ConnectCalls != 1 || mock.ConnectScopes[0] != config.ScopeCernetFree {
		t.Errorf("Unexpected connect tracking: %d %v", mock.ConnectCalls, mock.ConnectScopes)
	}
}

// TestMockUpdater_TracksCalls tests that submitted addresses are recorded
func TestMockUpdater_TracksCalls(t *testing.T) {
	mock := NewMockUpdater()
	ip := netip.MustParseAddr("1.2.3.5")

	if err := mock.Update(context.Background(), ip, nil); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if mock.UpdateCalls != 1 || mock.UpdatedIPs[0] != ip {
		t.Errorf("Unexpected tracking: %d %v", mock.UpdateCalls, mock.UpdatedIPs)
	}
}

// TestMockInterfaces tests address lookup by interface name
func TestMockInterfaces(t *testing.T) {
	mock := NewMockInterfaces("eth0", netip.MustParseAddr("10.0.0.2"))

	ip, err := mock.LocalIP("eth0")
	if err != nil || ip.String() != "10.0.0.2" {
		t.Errorf("LocalIP(eth0) = %s, %v", ip, err)
	}
	if ip, _ := mock.LocalIP("eth1"); ip.IsValid() {
		t.Errorf("Expected invalid address for unknown interface, got %s", ip)
	}
	if mock.LocalIPCalls != 2 {
		t.Errorf("Expected 2 calls, got %d", mock.LocalIPCalls)
	}
}
