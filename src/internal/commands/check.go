package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/probe"
)

// CheckCommand probes reachability without acting on the result.
type CheckCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	prober probe.HostProber
	out    io.Writer
}

func CreateCheckCommand() *CheckCommand {
	return &CheckCommand{
		fs:  flag.NewFlagSet("check", flag.ExitOnError),
		out: os.Stdout,
	}
}

func (c *CheckCommand) Name() string {
	return c.fs.Name()
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.prober == nil {
		c.prober = probe.NewProber(cfg.Probe)
	}

	return nil
}

func (c *CheckCommand) Run() error {
	report, err := probe.NewChecker(c.prober, c.cfg.Probe).Check(context.Background())

	fmt.Fprintf(c.out, "network:      %s\n", mark(report.Network))
	if report.Network {
		fmt.Fprintf(c.out, "cernet_free:  %s\n", mark(report.CernetFree))
		fmt.Fprintf(c.out, "global:       %s\n", mark(report.Global))
		fmt.Fprintf(c.out, "scope %s: %s\n", c.cfg.Connect.Scope, mark(report.Satisfies(c.cfg.Connect.Scope)))
	}

	return err
}

func mark(ok bool) string {
	if ok {
		return "✓ available"
	}
	return "✗ not available"
}
