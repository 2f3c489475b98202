package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusnet/autoconnect/src/internal/api"
	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/log"
	"github.com/campusnet/autoconnect/src/internal/status"
)

// StatusCommand prints the status file or serves it over HTTP.
type StatusCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
	out io.Writer

	listen string
	asJSON bool
}

func CreateStatusCommand() *StatusCommand {
	return &StatusCommand{
		fs:  flag.NewFlagSet("status", flag.ExitOnError),
		out: os.Stdout,
	}
}

func (c *StatusCommand) Name() string {
	return c.fs.Name()
}

func (c *StatusCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.StringVar(&c.listen, "listen", "", "Serve the status over HTTP on this address (e.g. 127.0.0.1:8080)")
	c.fs.BoolVar(&c.asJSON, "json", false, "Print the status as JSON")

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

func (c *StatusCommand) Run() error {
	if c.listen != "" {
		return c.serve()
	}

	st, err := status.Load(c.cfg.GetStatusFilePath())
	if err != nil {
		return err
	}

	if c.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(api.StatusResponse{IPGW: st.IPGW, DDNS: st.DDNS})
	}

	data, err := st.Encode()
	if err != nil {
		return err
	}
	_, err = c.out.Write(data)
	return err
}

func (c *StatusCommand) serve() error {
	server := api.NewServer(c.cfg.GetStatusFilePath(), c.listen)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		log.Infof("Server stopped gracefully")
	}

	return nil
}
