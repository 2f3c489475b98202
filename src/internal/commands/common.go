package commands

import (
	"io"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/errors"
	"github.com/campusnet/autoconnect/src/internal/log"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
	// LegacyExitCode makes domain errors exit with 0, as cron wrappers of earlier releases expect.
	LegacyExitCode bool
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
// Every failure is reported as a ConfigError.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, errors.NewConfigError("configuration validation failed", err)
	}

	return cfg, nil
}

// setupLogFile attaches the daily-rotated log file configured in cfg.
func setupLogFile(cfg *config.Config) (io.Closer, error) {
	closer, err := log.SetupFile(cfg.GetLogDir(), cfg.Log.Name, cfg.Log.MaxBackups)
	if err != nil {
		return nil, errors.NewConfigError("failed to open log file", err)
	}
	return closer, nil
}

// ExitCode maps the outcome of a command to the process exit code.
func ExitCode(err error, legacy bool) int {
	if err == nil {
		return 0
	}
	if legacy && errors.IsDomain(err) {
		return 0
	}
	return 1
}
