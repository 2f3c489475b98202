package gateway

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/errors"
	"github.com/campusnet/autoconnect/src/internal/log"
	"github.com/campusnet/autoconnect/src/internal/status"
)

type recordedCall struct {
	name string
	args []string
}

type fakeRunner struct {
	output []byte
	err    error
	calls  []recordedCall
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	return f.output, f.err
}

func loadTestConfig(t *testing.T, extra string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "autoconnect.toml")
	content := `
[connect]
enabled = true
scope = "global"
interface = "eth0"

[ddns]
provider = "pubyun"
username = "user"
password = "secret"
domain = "host.pubyun.org"
` + extra
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	return cfg
}

func TestController_ConnectGlobal(t *testing.T) {
	log.DisableLogs()
	cfg := loadTestConfig(t, "")
	runner := &fakeRunner{output: []byte("Connected.\nScope: global\n")}
	c := NewController(cfg, runner)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return at }

	st := status.New(filepath.Join(t.TempDir(), "status.toml"))
	if err := c.Connect(context.Background(), config.ScopeGlobal, st); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("Expected 1 invocation, got %d", len(runner.calls))
	}
	call := runner.calls[0]
	if call.name != cfg.GetAgentPath() {
		t.Errorf("Agent = %s, want %s", call.name, cfg.GetAgentPath())
	}
	want := []string{"-c", cfg.GetConfigPath(), "connect", "all"}
	if !reflect.DeepEqual(call.args, want) {
		t.Errorf("Args = %v, want %v", call.args, want)
	}
	if st.IPGW.IPGWStatus != "connected global" {
		t.Errorf("ipgw_status = %q", st.IPGW.IPGWStatus)
	}
	if !st.IPGW.LastUpdate.Equal(at) {
		t.Errorf("last_update = %v", st.IPGW.LastUpdate)
	}
}

func TestController_ConnectCernetFreeDropsAll(t *testing.T) {
	log.DisableLogs()
	cfg := loadTestConfig(t, "")
	runner := &fakeRunner{}
	c := NewController(cfg, runner)

	st := status.New(filepath.Join(t.TempDir(), "status.toml"))
	if err := c.Connect(context.Background(), config.ScopeCernetFree, st); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	want := []string{"-c", cfg.GetConfigPath(), "connect"}
	if !reflect.DeepEqual(runner.calls[0].args, want) {
		t.Errorf("Args = %v, want %v", runner.calls[0].args, want)
	}
	if st.IPGW.IPGWStatus != "connected cernet_free" {
		t.Errorf("ipgw_status = %q", st.IPGW.IPGWStatus)
	}
}

func TestController_ConnectFailure(t *testing.T) {
	log.DisableLogs()
	cfg := loadTestConfig(t, "")
	runner := &fakeRunner{output: []byte("Error: wrong password\n")}
	c := NewController(cfg, runner)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return at }

	st := status.New(filepath.Join(t.TempDir(), "status.toml"))
	err := c.Connect(context.Background(), config.ScopeGlobal, st)
	if !stderrors.Is(err, errors.ErrGateway) {
		t.Fatalf("Expected GatewayError, got: %v", err)
	}
	if st.IPGW.IPGWStatus != status.GatewayFailed {
		t.Errorf("ipgw_status = %q, want failed", st.IPGW.IPGWStatus)
	}
	if !st.IPGW.LastUpdate.Equal(at) {
		t.Errorf("last_update = %v", st.IPGW.LastUpdate)
	}
}

func TestController_Disconnect(t *testing.T) {
	log.DisableLogs()
	cfg := loadTestConfig(t, "")

	tests := []struct {
		name     string
		all      bool
		output   string
		wantArgs []string
		wantErr  bool
	}{
		{name: "plain", all: false, output: "Disconnected.", wantArgs: []string{"-c", cfg.GetConfigPath(), "connect"}},
		{name: "all", all: true, output: "Disconnected.", wantArgs: []string{"-c", cfg.GetConfigPath(), "connect", "all"}},
		{name: "agent error", all: false, output: "Error: not connected", wantArgs: []string{"-c", cfg.GetConfigPath(), "connect"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{output: []byte(tt.output)}
			err := NewController(cfg, runner).Disconnect(context.Background(), tt.all)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Disconnect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !stderrors.Is(err, errors.ErrGateway) {
				t.Errorf("Expected GatewayError, got: %v", err)
			}
			if !reflect.DeepEqual(runner.calls[0].args, tt.wantArgs) {
				t.Errorf("Args = %v, want %v", runner.calls[0].args, tt.wantArgs)
			}
		})
	}
}

func TestController_StartFailure(t *testing.T) {
	log.DisableLogs()
	cfg := loadTestConfig(t, "")
	runner := &fakeRunner{err: stderrors.New("exec: no such file or directory")}

	err := NewController(cfg, runner).Disconnect(context.Background(), false)
	if !stderrors.Is(err, errors.ErrGateway) {
		t.Fatalf("Expected GatewayError, got: %v", err)
	}
}

func TestController_CustomArgs(t *testing.T) {
	log.DisableLogs()
	cfg := loadTestConfig(t, `
[gateway]
agent = "/usr/local/bin/ipgw"
agent_config = "ipgw.conf"
args = ["--config={{config}}", "login", "--scope", "{{scope}}"]
`)
	runner := &fakeRunner{}
	st := status.New(filepath.Join(t.TempDir(), "status.toml"))

	if err := NewController(cfg, runner).Connect(context.Background(), config.ScopeCernetFree, st); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	call := runner.calls[0]
	if call.name != "/usr/local/bin/ipgw" {
		t.Errorf("Agent = %s", call.name)
	}
	wantConfig := filepath.Join(cfg.GetConfigDir(), "ipgw.conf")
	want := []string{"--config=" + wantConfig, "login", "--scope", "cernet_free"}
	if !reflect.DeepEqual(call.args, want) {
		t.Errorf("Args = %v, want %v", call.args, want)
	}
}

func TestInterpretOutput(t *testing.T) {
	log.DisableLogs()

	tests := []struct {
		output  string
		wantErr bool
	}{
		{output: "", wantErr: false},
		{output: "Connected successfully\n", wantErr: false},
		{output: "Error: login failed\nretry later\n", wantErr: true},
		{output: "IpgwError somewhere", wantErr: true},
		{output: "error in lower case", wantErr: false},
	}

	for _, tt := range tests {
		err := InterpretOutput([]byte(tt.output))
		if (err != nil) != tt.wantErr {
			t.Errorf("InterpretOutput(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
		}
	}
}

func TestFlatten(t *testing.T) {
	if got := flatten([]byte("line one\nline two\n")); got != "line one @@line two" {
		t.Errorf("flatten() = %q", got)
	}
}

func TestController_MalformedArgTemplate(t *testing.T) {
	log.DisableLogs()
	cfg := loadTestConfig(t, `
[gateway]
args = ["-c", "{{config", "connect"]
`)
	runner := &fakeRunner{}
	c := NewController(cfg, runner)
	st := status.New(filepath.Join(t.TempDir(), "status.toml"))

	err := c.Connect(context.Background(), config.ScopeGlobal, st)
	if !stderrors.Is(err, errors.ErrConfig) {
		t.Fatalf("Expected ConfigError from Connect, got: %v", err)
	}
	if err := c.Disconnect(context.Background(), false); !stderrors.Is(err, errors.ErrConfig) {
		t.Fatalf("Expected ConfigError from Disconnect, got: %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("Expected the agent not to run, got %d invocations", len(runner.calls))
	}
	if st.IPGW.IPGWStatus != "" {
		t.Errorf("Expected status untouched, got ipgw_status=%q", st.IPGW.IPGWStatus)
	}
}
