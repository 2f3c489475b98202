package api

import "github.com/campusnet/autoconnect/src/internal/status"

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// StatusResponse is the status document as served by the API.
type StatusResponse struct {
	IPGW *status.IPGWStatus `json:"ipgw"`
	DDNS *status.DDNSStatus `json:"ddns"`
}

// HealthCheckResponse returns health check results.
type HealthCheckResponse struct {
	Healthy bool                   `json:"healthy"`
	Checks  map[string]CheckResult `json:"checks"`
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}
