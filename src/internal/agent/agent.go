package agent

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/netip"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/ddns"
	"github.com/campusnet/autoconnect/src/internal/errors"
	"github.com/campusnet/autoconnect/src/internal/gateway"
	"github.com/campusnet/autoconnect/src/internal/lock"
	"github.com/campusnet/autoconnect/src/internal/log"
	"github.com/campusnet/autoconnect/src/internal/probe"
	"github.com/campusnet/autoconnect/src/internal/status"
)

// NetworkChecker classifies current reachability. *probe.Checker satisfies it.
type NetworkChecker interface {
	Check(ctx context.Context) (probe.Report, error)
}

// GatewayController manages the gateway session. *gateway.Controller satisfies it.
type GatewayController interface {
	Disconnect(ctx context.Context, all bool) error
	Connect(ctx context.Context, scope config.Scope, st *status.Status) error
}

// DDNSUpdater publishes an address. *ddns.Updater satisfies it.
type DDNSUpdater interface {
	Update(ctx context.Context, ip netip.Addr, st *status.Status) error
}

// Dependencies are the collaborators of a run.
type Dependencies struct {
	Checker    NetworkChecker
	Gateway    GatewayController
	Updater    DDNSUpdater
	Interfaces ddns.InterfaceResolver
}

// Builder constructs the collaborators for a loaded configuration.
type Builder func(cfg *config.Config) (*Dependencies, error)

// DefaultBuilder wires the real prober, gateway agent and DDNS provider.
func DefaultBuilder(cfg *config.Config) (*Dependencies, error) {
	prober := probe.NewProber(cfg.Probe)
	return &Dependencies{
		Checker:    probe.NewChecker(prober, cfg.Probe),
		Gateway:    gateway.NewController(cfg, nil),
		Updater:    ddns.NewUpdater(cfg.DDNS, nil),
		Interfaces: ddns.SystemInterfaces,
	}, nil
}

// Agent runs the reachability, gateway and DDNS steps against a loaded status.
type Agent struct {
	deps  *Dependencies
	state State
}

func New(deps *Dependencies) *Agent {
	return &Agent{deps: deps, state: StateIdle}
}

// State returns the last state the agent reached.
func (a *Agent) State() State {
	return a.state
}

func (a *Agent) transition(s State) {
	log.Debugf("State: %s -> %s", a.state, s)
	a.state = s
}

// Execute performs one complete run for an already validated configuration.
// A disabled configuration returns immediately without loading or writing status.
// Otherwise status is loaded under the run lock and saved whatever the outcome.
func Execute(ctx context.Context, cfg *config.Config, build Builder) error {
	a := &Agent{state: StateConfigLoaded}

	if !cfg.IsEnabled() {
		log.Infof("autoconnect disabled by configuration, terminated.")
		a.transition(StateTerminal)
		return nil
	}

	statusPath := cfg.GetStatusFilePath()
	runLock, err := lock.Acquire(statusPath + ".lock")
	if err != nil {
		return err
	}
	defer func() {
		if err := runLock.Release(); err != nil {
			log.Warnf("Failed to release run lock: %v", err)
		}
	}()

	st, err := status.Load(statusPath)
	if err != nil {
		return err
	}

	deps, err := build(cfg)
	if err != nil {
		return errors.NewInternalError("failed to initialize", err)
	}
	a.deps = deps

	runErr := a.Run(ctx, cfg, st)

	if err := st.Save(); err != nil {
		if runErr == nil {
			return err
		}
		log.Errorf("Failed to save status: %v", err)
	} else {
		a.transition(StatePersisted)
	}
	a.transition(StateTerminal)

	return runErr
}

// Run checks reachability, reconnects the gateway if the scope is not
// satisfied, and updates DDNS when needed. Every observation is recorded
// in st; persisting it is left to the caller.
func (a *Agent) Run(ctx context.Context, cfg *config.Config, st *status.Status) error {
	a.transition(StateStatusLoaded)
	scope := cfg.Connect.Scope

	satisfied, err := a.checkNetwork(ctx, scope, st)
	if err != nil {
		a.transition(StateReachabilityFailed)
		return err
	}

	if satisfied {
		a.transition(StateReachabilityOk)
	} else {
		a.transition(StateReachabilityFailed)
		log.Infof("Scope %s is not available, reconnecting gateway", scope)

		if err := a.deps.Gateway.Disconnect(ctx, false); err != nil {
			return err
		}
		if err := a.deps.Gateway.Connect(ctx, scope, st); err != nil {
			return err
		}
		a.transition(StateGatewayReconnected)

		satisfied, err = a.checkNetwork(ctx, scope, st)
		if err != nil {
			return err
		}
		if !satisfied {
			return errors.NewNetworkError(fmt.Sprintf("Scope `%s` still not available after reconnecting.", scope), nil)
		}
		a.transition(StateReachabilityOk)
	}

	ip, err := a.deps.Interfaces.LocalIP(cfg.Connect.Interface)
	if err != nil {
		return err
	}
	a.transition(StateIPChecked)
	log.Debugf("Interface %s has address %s", cfg.Connect.Interface, ip)

	if !st.NeedsDDNSUpdate(ip.String()) {
		log.Infof("IP address %s unchanged, DDNS is up to date", ip)
		return nil
	}

	if err := a.deps.Updater.Update(ctx, ip, st); err != nil {
		return err
	}
	a.transition(StateDDNSUpdated)

	return nil
}

// checkNetwork runs one reachability check and records it in st.
func (a *Agent) checkNetwork(ctx context.Context, scope config.Scope, st *status.Status) (bool, error) {
	report, err := a.deps.Checker.Check(ctx)
	if err != nil && !stderrors.Is(err, errors.ErrNetwork) {
		return false, err
	}

	st.IPGW.Network = report.Network
	st.IPGW.LastChecked = report.CheckedAt
	if err != nil {
		return false, err
	}
	st.IPGW.CernetFreeAvailable = report.CernetFree
	st.IPGW.GlobalAvailable = report.Global

	return report.Satisfies(scope), nil
}
