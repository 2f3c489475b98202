package mocks

import (
	"context"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/status"
)

// MockGateway is a mock implementation of the gateway controller.
//
// This allows testing the orchestration without invoking the real authentication agent.
type MockGateway struct {
	// DisconnectFunc is called by Disconnect if not nil
	DisconnectFunc func(ctx context.Context, all bool) error

	// ConnectFunc is called by Connect if not nil
	ConnectFunc func(ctx context.Context, scope config.Scope, st *status.Status) error

	// Track calls for verification in tests
	DisconnectCalls int
	ConnectCalls    int
	DisconnectAll   []bool
	ConnectScopes   []config.Scope
}

// Disconnect tears down the session.
func (m *MockGateway) Disconnect(ctx context.Context, all bool) error {
	m.DisconnectCalls++
	m.DisconnectAll = append(m.DisconnectAll, all)
	if m.DisconnectFunc != nil {
		return m.DisconnectFunc(ctx, all)
	}
	return nil
}

// Connect establishes a session at scope.
func (m *MockGateway) Connect(ctx context.Context, scope config.Scope, st *status.Status) error {
	m.ConnectCalls++
	m.ConnectScopes = append(m.ConnectScopes, scope)
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx, scope, st)
	}
	return nil
}

// NewMockGateway creates a new mock gateway with default behavior.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}
