package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/campusnet/autoconnect/src/internal/log"
	"github.com/campusnet/autoconnect/src/internal/status"
)

func writeStatusFile(t *testing.T, mutate func(st *status.Status)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "status.toml")
	st := status.New(path)
	mutate(st)
	if err := st.Save(); err != nil {
		t.Fatalf("Failed to write status: %v", err)
	}
	return path
}

func serve(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "127.0.0.1:50000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGetStatus(t *testing.T) {
	log.DisableLogs()
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	path := writeStatusFile(t, func(st *status.Status) {
		st.IPGW.Network = true
		st.MarkConnected("global", at)
		st.RecordDDNS("1.2.3.4", true, at)
	})

	rec := serve(NewRouter(path), "/api/v1/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data StatusResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Data.IPGW.IPGWStatus != "connected global" || body.Data.DDNS.SystemIP != "1.2.3.4" {
		t.Errorf("Unexpected status %+v %+v", body.Data.IPGW, body.Data.DDNS)
	}
}

func TestGetStatus_Missing(t *testing.T) {
	log.DisableLogs()
	rec := serve(NewRouter(filepath.Join(t.TempDir(), "status.toml")), "/api/v1/status")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestCheckHealth(t *testing.T) {
	log.DisableLogs()

	tests := []struct {
		name     string
		mutate   func(st *status.Status)
		wantCode int
	}{
		{
			name: "healthy",
			mutate: func(st *status.Status) {
				st.IPGW.Network = true
				st.MarkConnected("cernet_free", time.Now())
				st.RecordDDNS("1.2.3.4", true, time.Now())
			},
			wantCode: http.StatusOK,
		},
		{
			name: "gateway failed",
			mutate: func(st *status.Status) {
				st.IPGW.Network = true
				st.MarkGatewayFailed(time.Now())
				st.RecordDDNS("1.2.3.4", true, time.Now())
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name: "ddns failed",
			mutate: func(st *status.Status) {
				st.IPGW.Network = true
				st.RecordDDNS("1.2.3.4", false, time.Now())
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewRouter(writeStatusFile(t, tt.mutate)), "/api/v1/health")
			if rec.Code != tt.wantCode {
				t.Errorf("Expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPrivateSubnetOnly(t *testing.T) {
	log.DisableLogs()
	handler := NewRouter(filepath.Join(t.TempDir(), "status.toml"))

	tests := []struct {
		name     string
		remote   string
		headers  map[string]string
		wantCode int
	}{
		{"loopback", "127.0.0.1:50000", nil, http.StatusOK},
		{"ipv6 loopback", "[::1]:50000", nil, http.StatusOK},
		{"private lan", "192.168.1.20:50000", nil, http.StatusOK},
		{"campus private", "10.2.3.4:50000", nil, http.StatusOK},
		{"ula", "[fd00::1]:50000", nil, http.StatusOK},
		{"link local", "[fe80::1]:50000", nil, http.StatusOK},
		{"mapped private", "[::ffff:192.168.1.20]:50000", nil, http.StatusOK},
		{"public", "8.8.8.8:50000", nil, http.StatusForbidden},
		{"public ipv6", "[2001:da8::666]:50000", nil, http.StatusForbidden},
		{"garbage peer", "not-an-address", nil, http.StatusForbidden},
		{"spoofed forwarded for", "8.8.8.8:50000", map[string]string{"X-Forwarded-For": "127.0.0.1"}, http.StatusForbidden},
		{"spoofed real ip", "8.8.8.8:50000", map[string]string{"X-Real-IP": "10.0.0.1"}, http.StatusForbidden},
		{"public forwarded for from lan", "192.168.1.20:50000", map[string]string{"X-Forwarded-For": "8.8.8.8"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("Expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if rec.Code == http.StatusForbidden {
				var body ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Status != http.StatusForbidden {
					t.Errorf("Expected JSON error body, got %q", rec.Body.String())
				}
			}
		})
	}
}

func TestRouter_NoCORSHeaders(t *testing.T) {
	log.DisableLogs()
	rec := serve(NewRouter(filepath.Join(t.TempDir(), "status.toml")), "/health")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS header, got %q", got)
	}
}
