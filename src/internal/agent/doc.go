// Package agent orchestrates a single autoconnect run.
//
// A run verifies reachability at the configured scope, re-establishes the
// gateway session when the scope is not satisfied, and publishes the
// interface address through DDNS when it changed or the previous submission
// failed. The status document is persisted at the end of every run that got
// as far as loading it, including runs that end in a domain error.
//
// Scheduling is external: a run is one pass through the state machine,
// normally triggered by cron or a systemd timer.
package agent
