package gateway

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/errors"
	"github.com/campusnet/autoconnect/src/internal/log"
	"github.com/campusnet/autoconnect/src/internal/status"
)

const (
	TmplConfig = "config"
	TmplAll    = "all"
	TmplScope  = "scope"

	// failureMarker in the agent output means the invocation failed, whatever the exit code.
	failureMarker = "Error"
	// outputDelimiter replaces newlines when the agent output is written to the log.
	outputDelimiter = " @@"
)

// ErrAgentFailed is returned by InterpretOutput when the agent output carries the failure marker.
var ErrAgentFailed = stderrors.New("agent reported an error")

// Controller invokes the gateway agent to tear down and re-establish the session.
type Controller struct {
	agent       string
	agentConfig string
	args        []string
	timeout     time.Duration
	runner      CommandRunner
	now         func() time.Time
}

// NewController builds a controller for the agent configured in cfg.
func NewController(cfg *config.Config, runner CommandRunner) *Controller {
	if runner == nil {
		runner = ExecRunner{}
	}
	timeout := cfg.Gateway.Timeout()
	if timeout <= 0 {
		timeout = config.DefaultGatewayTimeout
	}
	args := cfg.Gateway.Args
	if len(args) == 0 {
		args = config.DefaultGatewayArgs
	}
	return &Controller{
		agent:       cfg.GetAgentPath(),
		agentConfig: cfg.GetAgentConfigPath(),
		args:        args,
		timeout:     timeout,
		runner:      runner,
		now:         time.Now,
	}
}

// Disconnect tears the current session down. all widens the teardown to every scope.
func (c *Controller) Disconnect(ctx context.Context, all bool) error {
	scope := config.ScopeCernetFree
	if all {
		scope = config.ScopeGlobal
	}
	args, err := c.renderArgs(scope)
	if err != nil {
		return err
	}
	log.Infof("Disconnecting gateway session (all=%v)", all)
	if err := c.invoke(ctx, args); err != nil {
		return errors.NewGatewayError("Failed to disconnect.", err)
	}
	return nil
}

// Connect establishes a session at scope and records the outcome in st.
// A malformed argument template is reported before the agent runs and leaves st untouched.
func (c *Controller) Connect(ctx context.Context, scope config.Scope, st *status.Status) error {
	args, err := c.renderArgs(scope)
	if err != nil {
		return err
	}
	log.Infof("Connecting gateway session with scope %s", scope)
	if err := c.invoke(ctx, args); err != nil {
		st.MarkGatewayFailed(c.now())
		return errors.NewGatewayError("Failed to connect.", err)
	}
	st.MarkConnected(string(scope), c.now())
	log.Infof("Gateway connected with scope %s", scope)
	return nil
}

func (c *Controller) invoke(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log.Debugf("Running %s %v", c.agent, args)

	output, err := c.runner.Run(ctx, c.agent, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) || ctx.Err() != nil {
			if len(output) > 0 {
				log.Detailf("%s", flatten(output))
			}
			return err
		}
		// The agent's exit code is not meaningful; its output decides.
	}

	return InterpretOutput(output)
}

// renderArgs expands the argument template for scope. Arguments that render empty are dropped.
// A malformed template is a ConfigError.
func (c *Controller) renderArgs(scope config.Scope) ([]string, error) {
	all := ""
	if scope == config.ScopeGlobal {
		all = "all"
	}
	values := map[string]interface{}{
		TmplConfig: c.agentConfig,
		TmplAll:    all,
		TmplScope:  string(scope),
	}

	rendered := make([]string, 0, len(c.args))
	for _, arg := range c.args {
		if strings.Contains(arg, "{{") {
			t, err := fasttemplate.NewTemplate(arg, "{{", "}}")
			if err != nil {
				return nil, errors.NewConfigError(fmt.Sprintf("invalid gateway argument %q", arg), err)
			}
			arg = t.ExecuteString(values)
		}
		if arg == "" {
			continue
		}
		rendered = append(rendered, arg)
	}
	return rendered, nil
}

// InterpretOutput decides whether an agent invocation succeeded from its combined output.
// A failed invocation's output is written to the log file with newlines flattened.
func InterpretOutput(output []byte) error {
	if !bytes.Contains(output, []byte(failureMarker)) {
		return nil
	}
	log.Detailf("%s", flatten(output))
	return ErrAgentFailed
}

func flatten(output []byte) string {
	return strings.ReplaceAll(strings.TrimRight(string(output), "\n"), "\n", outputDelimiter)
}
