package api

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/campusnet/autoconnect/src/internal/log"
)

// Logger logs every request at debug level.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debugf("%s %s - %d (%v)", r.Method, r.URL.Path, rec.code, time.Since(start))
	})
}

// Recovery turns a handler panic into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				log.Errorf("Panic while serving %s: %v", r.URL.Path, v)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// PrivateSubnetOnly rejects peers outside loopback, link-local and private ranges.
// Only the socket peer address is trusted; forwarding headers are ignored.
func PrivateSubnetOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr, ok := peerAddr(r.RemoteAddr)
		if !ok {
			log.Warnf("Rejecting request with unparsable peer address %q", r.RemoteAddr)
			writeError(w, http.StatusForbidden, "access denied")
			return
		}
		if !addr.IsLoopback() && !addr.IsPrivate() && !addr.IsLinkLocalUnicast() {
			log.Warnf("Rejecting request from public address %s", addr)
			writeError(w, http.StatusForbidden, "access denied: only private networks are allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func peerAddr(remote string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(remote); err == nil {
		return ap.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(remote)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}
