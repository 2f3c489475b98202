package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusnet/autoconnect/src/internal/agent"
	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/errors"
	"github.com/campusnet/autoconnect/src/internal/log"
	"github.com/campusnet/autoconnect/src/internal/utils"
)

// RunCommand performs one connectivity maintenance pass.
type RunCommand struct {
	fs    *flag.FlagSet
	ctx   *AppContext
	cfg   *config.Config
	build agent.Builder

	noLogFile bool
}

func CreateRunCommand() *RunCommand {
	return &RunCommand{
		fs:    flag.NewFlagSet("run", flag.ExitOnError),
		build: agent.DefaultBuilder,
	}
}

func (c *RunCommand) Name() string {
	return c.fs.Name()
}

func (c *RunCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.BoolVar(&c.noLogFile, "no-log-file", false, "Do not write the log file")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	return nil
}

func (c *RunCommand) Run() error {
	if !c.noLogFile {
		closer, err := setupLogFile(c.cfg)
		if err != nil {
			return err
		}
		defer func() {
			log.SetOutputFile(nil, "")
			utils.CloseOrWarn(closer)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Started autoconnect.")
	err := agent.Execute(ctx, c.cfg, c.build)
	if err != nil {
		log.Detailf("%s", errors.Report(err))
	}
	if c.cfg.IsEnabled() {
		log.Infof("Terminated.")
	}
	return err
}
