package commands

import (
	"flag"
	"fmt"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/status"
)

// InitStatusCommand creates the status file a run requires.
type InitStatusCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	force bool
}

func CreateInitStatusCommand() *InitStatusCommand {
	return &InitStatusCommand{
		fs: flag.NewFlagSet("init-status", flag.ExitOnError),
	}
}

func (c *InitStatusCommand) Name() string {
	return c.fs.Name()
}

func (c *InitStatusCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.BoolVar(&c.force, "force", false, "Overwrite an existing status file")

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

func (c *InitStatusCommand) Run() error {
	st, err := status.Create(c.cfg.GetStatusFilePath(), c.force)
	if err != nil {
		return err
	}
	fmt.Printf("Status file created: %s\n", st.Path())
	return nil
}
