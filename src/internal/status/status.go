// Package status persists the last-known state of the agent between runs.
//
// The status file is a TOML document with an `ipgw` and a `ddns` table. It is
// read fully at the start of a run and rewritten atomically at the end. Keys
// this version does not know about are carried over unchanged.
package status

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/campusnet/autoconnect/src/internal/errors"
	"github.com/campusnet/autoconnect/src/internal/utils"
)

const (
	// GatewayFailed is stored in ipgw.ipgw_status after a failed connect.
	GatewayFailed = "failed"
	// connectedPrefix precedes the scope in ipgw.ipgw_status, e.g. "connected global".
	connectedPrefix = "connected "
)

// IPGWStatus is the gateway and reachability part of the status file.
type IPGWStatus struct {
	Network             bool      `toml:"network" json:"network"`
	CernetFreeAvailable bool      `toml:"cernet_free_available" json:"cernet_free_available"`
	GlobalAvailable     bool      `toml:"global_available" json:"global_available"`
	LastChecked         time.Time `toml:"last_checked" json:"last_checked"`
	IPGWStatus          string    `toml:"ipgw_status" json:"ipgw_status"`
	LastUpdate          time.Time `toml:"last_update" json:"last_update"`
}

// DDNSStatus is the DDNS part of the status file.
type DDNSStatus struct {
	// SystemIP is the last address submitted to the provider.
	SystemIP string `toml:"system_ip" json:"system_ip"`
	// Updated reports whether that submission succeeded.
	Updated    bool      `toml:"updated" json:"updated"`
	LastUpdate time.Time `toml:"last_update" json:"last_update"`
}

type Status struct {
	IPGW *IPGWStatus `toml:"ipgw" json:"ipgw"`
	DDNS *DDNSStatus `toml:"ddns" json:"ddns"`

	path string
	raw  map[string]interface{}
}

// New returns an empty status bound to path. Nothing is written until Save.
func New(path string) *Status {
	return &Status{
		IPGW: &IPGWStatus{},
		DDNS: &DDNSStatus{},
		path: path,
		raw:  map[string]interface{}{},
	}
}

// Load reads the status file. A missing file is a StatusError: the first
// status file is created by an explicit setup step, never implicitly.
func Load(path string) (*Status, error) {
	content, err := os.ReadFile(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, errors.NewStatusError("Status file missing.", nil)
	}
	if err != nil {
		return nil, errors.NewStatusError("failed to read status file", err)
	}

	s := New(path)
	if err := toml.Unmarshal(content, s); err != nil {
		return nil, errors.NewStatusError("failed to parse status file", err)
	}
	if err := toml.Unmarshal(content, &s.raw); err != nil {
		return nil, errors.NewStatusError("failed to parse status file", err)
	}
	if s.IPGW == nil {
		s.IPGW = &IPGWStatus{}
	}
	if s.DDNS == nil {
		s.DDNS = &DDNSStatus{}
	}

	return s, nil
}

// Path returns the file the status is bound to.
func (s *Status) Path() string {
	return s.path
}

// Encode renders the full document, known fields merged over the keys read from disk.
func (s *Status) Encode() ([]byte, error) {
	typed, err := toml.Marshal(s)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := toml.Unmarshal(typed, &fields); err != nil {
		return nil, err
	}

	merged := make(map[string]interface{}, len(s.raw))
	for key, value := range s.raw {
		merged[key] = value
	}
	for section, value := range fields {
		table, ok := value.(map[string]interface{})
		existing, isTable := merged[section].(map[string]interface{})
		if !ok || !isTable {
			merged[section] = value
			continue
		}
		out := make(map[string]interface{}, len(existing)+len(table))
		for k, v := range existing {
			out[k] = v
		}
		for k, v := range table {
			out[k] = v
		}
		merged[section] = out
	}

	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(merged); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save rewrites the whole status file atomically.
func (s *Status) Save() error {
	data, err := s.Encode()
	if err != nil {
		return errors.NewStatusError("failed to serialize status", err)
	}
	if err := utils.WriteFileAtomic(s.path, data, 0600); err != nil {
		return errors.NewStatusError("failed to write status file", err)
	}
	return nil
}

// Create writes a fresh status file. It refuses to replace an existing one unless force is set.
func Create(path string, force bool) (*Status, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return nil, errors.NewStatusError(fmt.Sprintf("status file already exists: %s", path), nil)
	}
	s := New(path)
	if err := s.Save(); err != nil {
		return nil, err
	}
	return s, nil
}

// MarkConnected records a successful gateway connect at the given scope.
func (s *Status) MarkConnected(scope string, at time.Time) {
	s.IPGW.IPGWStatus = connectedPrefix + scope
	s.IPGW.LastUpdate = at
}

// MarkGatewayFailed records a failed gateway connect attempt.
func (s *Status) MarkGatewayFailed(at time.Time) {
	s.IPGW.IPGWStatus = GatewayFailed
	s.IPGW.LastUpdate = at
}

// RecordDDNS records a DDNS submission of ip and whether it succeeded.
func (s *Status) RecordDDNS(ip string, updated bool, at time.Time) {
	s.DDNS.SystemIP = ip
	s.DDNS.Updated = updated
	s.DDNS.LastUpdate = at
}

// NeedsDDNSUpdate reports whether currentIP must be submitted: the address
// changed, or the previous submission failed.
func (s *Status) NeedsDDNSUpdate(currentIP string) bool {
	return currentIP != s.DDNS.SystemIP || !s.DDNS.Updated
}
