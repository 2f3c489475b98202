// Package commands implements the autoconnect CLI subcommands.
//
// Each command implements Runner: Init parses the command's own flags and
// loads the configuration, Run performs the work. Errors are returned to
// main, which prints domain errors as "<Kind>: <description>" and picks the
// exit code with ExitCode.
//
// Commands:
//   - run: one pass of the connectivity state machine (the cron entry point)
//   - init-status: create the status file
//   - status: print the status file, or serve it over HTTP with -listen
//   - check: probe reachability without touching the gateway or status
//   - ip: print the configured interface's IPv4 address
package commands
