package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP resolves the address used to key per-client limits.
// With trustProxy it prefers the left-most X-Forwarded-For entry, then
// X-Real-IP; otherwise only RemoteAddr is used. Invalid header values are
// ignored so a client cannot pick an arbitrary key.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		xff, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		if ip, ok := parseIP(xff); ok {
			return ip
		}
		if ip, ok := parseIP(r.Header.Get("X-Real-IP")); ok {
			return ip
		}
	}
	if ip, ok := parseIP(r.RemoteAddr); ok {
		return ip
	}
	return r.RemoteAddr
}

// parseIP accepts "ip", "ip:port" and "[v6]:port".
func parseIP(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}
