package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ExtractIP returns the client IP address of the request without port.
//
// With trustProxy set, the first X-Forwarded-For entry and then X-Real-IP are
// preferred over RemoteAddr. Only enable it behind a reverse proxy that sets
// these headers; otherwise clients can spoof them to dodge rate limiting.
func ExtractIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
