package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/campusnet/autoconnect/src/internal/commands"
	"github.com/campusnet/autoconnect/src/internal/errors"
	"github.com/campusnet/autoconnect/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "/etc/autoconnect/autoconnect.toml", "Path to configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&ctx.Quiet, "quiet", false, "Suppress console logging (errors are still reported)")
	flag.BoolVar(&ctx.LegacyExitCode, "legacy-exit-code", false, "Exit with 0 on domain errors")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Campus network connectivity agent\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  run                     Check connectivity, reconnect the gateway and update DDNS\n")
		fmt.Fprintf(os.Stderr, "  init-status             Create the status file\n")
		fmt.Fprintf(os.Stderr, "  status                  Show the status file (or serve it with -listen)\n")
		fmt.Fprintf(os.Stderr, "  check                   Check reachability only\n")
		fmt.Fprintf(os.Stderr, "  ip                      Show the IPv4 address of the configured interface\n")
		fmt.Fprintf(os.Stderr, "  version                 Show version information\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	log.SetVerbose(ctx.Verbose)
	log.SetQuiet(ctx.Quiet)

	cmds := []commands.Runner{
		commands.CreateRunCommand(),
		commands.CreateInitStatusCommand(),
		commands.CreateStatusCommand(),
		commands.CreateCheckCommand(),
		commands.CreateIPCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	if subcommand == "version" {
		fmt.Printf("autoconnect %s (Commit: %s, Date: %s)\n", version, commit, date)
		os.Exit(0)
	}

	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			err := cmd.Init(args[1:], ctx)
			if err == nil {
				err = cmd.Run()
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, errors.Report(err))
			}
			os.Exit(commands.ExitCode(err, ctx.LegacyExitCode))
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
