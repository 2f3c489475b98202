// Package config handles configuration file parsing and validation for autoconnect.
//
// The configuration is a TOML file with two required sections, `connect` and
// `ddns`, and optional `gateway`, `probe`, `paths` and `log` sections that
// fall back to defaults. Relative paths are resolved against the directory of
// the configuration file.
//
// # Example Usage
//
//	cfg, err := config.LoadConfig("/etc/autoconnect/autoconnect.toml")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if !cfg.IsEnabled() {
//	    return
//	}
package config
