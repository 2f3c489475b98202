// Package gateway drives the external campus gateway authentication agent.
//
// The agent is stateful: invoking it with the `connect` verb toggles the
// session, and the optional `all` argument widens the scope to the whole
// Internet. Success or failure is read from the agent's combined output.
package gateway
