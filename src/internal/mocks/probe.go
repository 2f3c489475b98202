package mocks

import (
	"context"
	"time"

	"github.com/campusnet/autoconnect/src/internal/probe"
)

// MockChecker is a mock implementation of the reachability checker.
//
// Results are served from Reports in order; the last one repeats once the
// queue is drained. With no reports configured, everything is reachable.
type MockChecker struct {
	// CheckFunc is called by Check if not nil
	CheckFunc func(ctx context.Context) (probe.Report, error)

	// Reports are returned by successive Check calls when CheckFunc is nil
	Reports []probe.Report
	// Errors are paired with Reports by index
	Errors []error

	// Track calls for verification in tests
	CheckCalls int
}

// Check returns the next configured report.
func (m *MockChecker) Check(ctx context.Context) (probe.Report, error) {
	m.CheckCalls++
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx)
	}
	if len(m.Reports) == 0 {
		return ReachableReport(), nil
	}

	i := m.CheckCalls - 1
	if i >= len(m.Reports) {
		i = len(m.Reports) - 1
	}
	var err error
	if i < len(m.Errors) {
		err = m.Errors[i]
	}
	return m.Reports[i], err
}

// NewMockChecker creates a checker that serves the given reports in order.
func NewMockChecker(reports ...probe.Report) *MockChecker {
	return &MockChecker{Reports: reports}
}

// ReachableReport is a report with every reference host reachable.
func ReachableReport() probe.Report {
	return probe.Report{Network: true, CernetFree: true, Global: true, CheckedAt: time.Now()}
}

// MockHostProber is a mock implementation of probe.HostProber keyed by host name.
type MockHostProber struct {
	// Results maps host to the probe outcome; unknown hosts are unreachable
	Results map[string]probe.Result

	// Track probed hosts in call order
	ProbedHosts []string
}

// Probe returns the configured result for host.
func (m *MockHostProber) Probe(ctx context.Context, host string) (probe.Result, error) {
	m.ProbedHosts = append(m.ProbedHosts, host)
	return m.Results[host], nil
}
