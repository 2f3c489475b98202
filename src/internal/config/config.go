package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/campusnet/autoconnect/src/internal/log"
)

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("configuration file missing: %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Detailf("%s", derr.String())
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config file at line %d, column %d", row, col)
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config._absConfigFilePath = configFile
	config.applyDefaults()

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Status file path: %s", config.GetStatusFilePath())

	return &config, nil
}

// applyDefaults fills the optional sections. Required sections are left nil for ValidateConfig to report.
func (c *Config) applyDefaults() {
	if c.Gateway == nil {
		c.Gateway = &GatewayConfig{}
	}
	if c.Gateway.Agent == "" {
		c.Gateway.Agent = DefaultGatewayAgent
	}
	if len(c.Gateway.Args) == 0 {
		c.Gateway.Args = append([]string(nil), DefaultGatewayArgs...)
	}
	if c.Gateway.TimeoutSeconds == 0 {
		c.Gateway.TimeoutSeconds = int(DefaultGatewayTimeout.Seconds())
	}

	if c.Probe == nil {
		c.Probe = &ProbeConfig{}
	}
	if c.Probe.HomeHost == "" {
		c.Probe.HomeHost = DefaultHomeHost
	}
	if c.Probe.CernetFreeHost == "" {
		c.Probe.CernetFreeHost = DefaultCernetFreeHost
	}
	if c.Probe.GlobalHost == "" {
		c.Probe.GlobalHost = DefaultGlobalHost
	}
	if c.Probe.Port == 0 {
		c.Probe.Port = DefaultProbePort
	}
	if c.Probe.TimeoutSeconds == 0 {
		c.Probe.TimeoutSeconds = int(DefaultProbeTimeout.Seconds())
	}

	if c.Paths == nil {
		c.Paths = &PathsConfig{}
	}
	if c.Paths.StatusFile == "" {
		c.Paths.StatusFile = DefaultStatusFile
	}
	if c.Paths.LogDir == "" {
		c.Paths.LogDir = DefaultLogDir
	}

	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Name == "" {
		c.Log.Name = DefaultLogName
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = DefaultMaxBackups
	}

	if c.DDNS != nil && c.DDNS.TimeoutSeconds == 0 {
		c.DDNS.TimeoutSeconds = int(DefaultDDNSTimeout.Seconds())
	}
}
