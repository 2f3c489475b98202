// Package utils provides small helpers shared across autoconnect: resolving
// paths relative to the configuration directory and replacing files atomically.
//
//	absPath := utils.GetAbsolutePath("status.toml", "/etc/autoconnect")
//	// Returns: /etc/autoconnect/status.toml
package utils
