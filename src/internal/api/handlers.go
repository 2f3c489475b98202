package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"os"

	"github.com/campusnet/autoconnect/src/internal/status"
)

// Handler serves the status endpoints from a status file.
type Handler struct {
	statusPath string
}

func NewHandler(statusPath string) *Handler {
	return &Handler{statusPath: statusPath}
}

// GetStatus returns the status document.
// GET /api/v1/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadStatus(w)
	if !ok {
		return
	}
	writeJSONData(w, StatusResponse{IPGW: st.IPGW, DDNS: st.DDNS})
}

// CheckHealth summarizes the last run.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadStatus(w)
	if !ok {
		return
	}

	response := HealthCheckResponse{
		Healthy: true,
		Checks:  make(map[string]CheckResult),
	}
	add := func(name string, passed bool, ok, failed string) {
		message := ok
		if !passed {
			message = failed
			response.Healthy = false
		}
		response.Checks[name] = CheckResult{Passed: passed, Message: message}
	}

	add("network", st.IPGW.Network, "Internet is available", "Internet was not available at the last check")
	add("gateway", st.IPGW.IPGWStatus != status.GatewayFailed, "Gateway session is not in a failed state", "Last gateway connect failed")
	add("ddns", st.DDNS.Updated, "DDNS record is up to date", "Last DDNS update failed")

	code := http.StatusOK
	if !response.Healthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}

func (h *Handler) loadStatus(w http.ResponseWriter) (*status.Status, bool) {
	if _, err := os.Stat(h.statusPath); stderrors.Is(err, os.ErrNotExist) {
		writeError(w, http.StatusNotFound, "status file not found")
		return nil, false
	}

	st, err := status.Load(h.statusPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load status: "+err.Error())
		return nil, false
	}
	return st, true
}

// writeJSON writes a JSON response with the "data" envelope.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}
