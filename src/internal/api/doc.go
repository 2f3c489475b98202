// Package api serves a read-only HTTP view of the autoconnect status file.
//
// The server is started by `autoconnect status -listen <addr>` and reads the
// status file on every request, so it always reflects the last completed run.
// Access is restricted to private subnets.
//
// # Endpoints
//
//	GET /api/v1/status   the full status document
//	GET /api/v1/health   health summary derived from the status
//	GET /health          plain "OK" liveness probe
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "ERROR_CODE",
//	    "message": "Human-readable error message"
//	  }
//	}
package api
