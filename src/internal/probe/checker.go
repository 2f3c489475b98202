package probe

import (
	"context"
	"time"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/errors"
)

// HostProber probes a single host. *Prober satisfies it.
type HostProber interface {
	Probe(ctx context.Context, host string) (Result, error)
}

// Report is the reachability picture of one check.
type Report struct {
	// Network is false when the home host could not be reached; the other flags are then not probed.
	Network    bool
	CernetFree bool
	Global     bool
	CheckedAt  time.Time
}

// Satisfies reports whether the probed reachability is enough for scope.
// cernet_free needs the campus-free host, global needs both campus-free and global hosts.
func (r Report) Satisfies(scope config.Scope) bool {
	switch scope {
	case config.ScopeCernetFree:
		return r.CernetFree
	case config.ScopeGlobal:
		return r.CernetFree && r.Global
	default:
		return false
	}
}

// Checker runs the three reference probes.
type Checker struct {
	prober HostProber
	hosts  *config.ProbeConfig
	now    func() time.Time
}

func NewChecker(prober HostProber, hosts *config.ProbeConfig) *Checker {
	return &Checker{
		prober: prober,
		hosts:  hosts,
		now:    time.Now,
	}
}

// Check probes the home host first. If it is unreachable a NetworkError is
// returned together with a report carrying Network=false. Otherwise the
// campus-free and global hosts are probed independently.
func (c *Checker) Check(ctx context.Context) (Report, error) {
	report := Report{CheckedAt: c.now()}

	home, err := c.prober.Probe(ctx, c.hosts.HomeHost)
	if err != nil {
		return report, err
	}
	if home != Reachable {
		return report, errors.NewNetworkError("Seems Internet is not available.", nil)
	}
	report.Network = true

	cernetFree, err := c.prober.Probe(ctx, c.hosts.CernetFreeHost)
	if err != nil {
		return report, err
	}
	global, err := c.prober.Probe(ctx, c.hosts.GlobalHost)
	if err != nil {
		return report, err
	}

	report.CernetFree = cernetFree == Reachable
	report.Global = global == Reachable
	return report, nil
}
