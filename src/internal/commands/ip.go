package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/ddns"
)

// IPCommand prints the IPv4 address that a run would publish.
type IPCommand struct {
	fs         *flag.FlagSet
	ctx        *AppContext
	cfg        *config.Config
	interfaces ddns.InterfaceResolver
	out        io.Writer

	iface string
}

func CreateIPCommand() *IPCommand {
	return &IPCommand{
		fs:         flag.NewFlagSet("ip", flag.ExitOnError),
		interfaces: ddns.SystemInterfaces,
		out:        os.Stdout,
	}
}

func (c *IPCommand) Name() string {
	return c.fs.Name()
}

func (c *IPCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.StringVar(&c.iface, "interface", "", "Interface to look up instead of connect.interface")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.iface == "" {
		c.iface = cfg.Connect.Interface
	}

	return nil
}

func (c *IPCommand) Run() error {
	ip, err := c.interfaces.LocalIP(c.iface)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s\n", ip)
	return nil
}
