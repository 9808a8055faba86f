package common

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP determines the client address for request logging, preferring the
// proxy headers the reverse proxy in front of the API sets.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); ip != "" {
		// First hop in the chain is the original client.
		if first := strings.TrimSpace(strings.SplitN(ip, ",", 2)[0]); first != "" {
			return first
		}
		return ip
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
