package config

import (
	"path/filepath"
	"time"

	"github.com/campusnet/autoconnect/src/internal/utils"
)

// Scope is the gateway session scope requested from the campus gateway.
type Scope string

const (
	// ScopeCernetFree reaches campus and CERNET-free networks only.
	ScopeCernetFree Scope = "cernet_free"
	// ScopeGlobal reaches the whole Internet and needs a full session.
	ScopeGlobal Scope = "global"
)

const (
	DefaultHomeHost       = "www.pku.edu.cn"
	DefaultCernetFreeHost = "www.baidu.com"
	DefaultGlobalHost     = "www.acs.org"
	DefaultProbePort      = 80
	DefaultProbeTimeout   = 2 * time.Second

	DefaultGatewayAgent   = "ipgw/pkuipgw/pkuipgw"
	DefaultGatewayTimeout = 60 * time.Second

	DefaultDDNSTimeout = 30 * time.Second

	DefaultStatusFile = "status.toml"
	DefaultLogDir     = "log"
	DefaultLogName    = "autoconnect"
	DefaultMaxBackups = 14
)

// DefaultGatewayArgs invokes the agent the way pkuipgw expects: -c <config> connect [all].
var DefaultGatewayArgs = []string{"-c", "{{config}}", "connect", "{{all}}"}

type Config struct {
	// Connect holds the gateway connection settings.
	Connect *ConnectConfig `toml:"connect"`
	// DDNS holds the dynamic DNS provider settings.
	DDNS *DDNSConfig `toml:"ddns"`
	// Gateway describes how the external authentication agent is invoked.
	Gateway *GatewayConfig `toml:"gateway,omitempty"`
	// Probe holds the reference hosts used to classify reachability.
	Probe *ProbeConfig `toml:"probe,omitempty"`
	// Paths locates the status file and the log directory.
	Paths *PathsConfig `toml:"paths,omitempty"`
	// Log holds log file settings.
	Log *LogConfig `toml:"log,omitempty"`

	_absConfigFilePath string
}

type ConnectConfig struct {
	// Enabled turns the agent on. A disabled agent exits successfully without touching the network.
	Enabled *bool `toml:"enabled" validate:"required"`
	// Scope is the session scope to maintain: cernet_free or global.
	Scope Scope `toml:"scope" validate:"required,oneof=cernet_free global"`
	// Interface is the network interface whose IPv4 address is published via DDNS.
	Interface string `toml:"interface" validate:"required"`
}

type DDNSConfig struct {
	// Provider selects the DDNS protocol (pubyun, dyndns2).
	Provider string `toml:"provider" validate:"required"`
	Username string `toml:"username" validate:"required"`
	Password string `toml:"password" validate:"required"`
	// Domain is the host name to keep updated.
	Domain string `toml:"domain" validate:"required"`
	// Server is the update URL template for the dyndns2 provider. Available variables: {{domain}}, {{ip}}.
	Server string `toml:"server,omitempty" validate:"update_url_or_empty"`
	// TimeoutSeconds bounds the update request (default: 30).
	TimeoutSeconds int `toml:"timeout_seconds,omitempty" validate:"gte=0"`
}

type GatewayConfig struct {
	// Agent is the gateway authentication executable, relative to the config directory.
	Agent string `toml:"agent"`
	// AgentConfig is the agent's own configuration file, passed as {{config}}.
	AgentConfig string `toml:"agent_config"`
	// Args is the argument template. Available variables: {{config}}, {{all}}, {{scope}}. Empty arguments are dropped.
	Args []string `toml:"args" validate:"dive,arg_template"`
	// TimeoutSeconds bounds a single agent invocation (default: 60).
	TimeoutSeconds int `toml:"timeout_seconds" validate:"gte=0"`
}

type ProbeConfig struct {
	// HomeHost must be reachable for the network to be considered up at all.
	HomeHost string `toml:"home_host" validate:"required,hostname_rfc1123"`
	// CernetFreeHost is reachable with a cernet_free session.
	CernetFreeHost string `toml:"cernet_free_host" validate:"required,hostname_rfc1123"`
	// GlobalHost is reachable only with a global session.
	GlobalHost string `toml:"global_host" validate:"required,hostname_rfc1123"`
	// Port is the TCP port connected to on each reference host (default: 80).
	Port uint16 `toml:"port" validate:"min=1"`
	// TimeoutSeconds bounds each TCP connect (default: 2).
	TimeoutSeconds int `toml:"timeout_seconds" validate:"gte=0"`
	// Nameserver, when set, is queried directly instead of the system resolver. Format: ip or ip:port.
	Nameserver string `toml:"nameserver" validate:"nameserver_or_empty"`
}

type PathsConfig struct {
	StatusFile string `toml:"status_file"`
	LogDir     string `toml:"log_dir"`
}

type LogConfig struct {
	Name       string `toml:"name"`
	MaxBackups int    `toml:"max_backups" validate:"gte=0"`
}

// IsEnabled reports whether the agent should run.
func (c *Config) IsEnabled() bool {
	return c.Connect != nil && c.Connect.Enabled != nil && *c.Connect.Enabled
}

func (c *Config) GetConfigDir() string {
	return filepath.Dir(c._absConfigFilePath)
}

func (c *Config) GetConfigPath() string {
	return c._absConfigFilePath
}

func (c *Config) GetStatusFilePath() string {
	return utils.GetAbsolutePath(c.Paths.StatusFile, c.GetConfigDir())
}

func (c *Config) GetLogDir() string {
	return utils.GetAbsolutePath(c.Paths.LogDir, c.GetConfigDir())
}

func (c *Config) GetAgentPath() string {
	return utils.GetAbsolutePath(c.Gateway.Agent, c.GetConfigDir())
}

// GetAgentConfigPath returns the agent configuration path, or the autoconnect config itself when unset.
func (c *Config) GetAgentConfigPath() string {
	if c.Gateway.AgentConfig == "" {
		return c._absConfigFilePath
	}
	return utils.GetAbsolutePath(c.Gateway.AgentConfig, c.GetConfigDir())
}

func (p *ProbeConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

func (g *GatewayConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

func (d *DDNSConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}
