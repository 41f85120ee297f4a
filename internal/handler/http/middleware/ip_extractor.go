package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"
)

// IPExtractor resolves the client IP a rate-limit decision should key on.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor keys on the TCP peer address. This is the safe
// default: RemoteAddr cannot be spoofed, while forwarding headers can.
type RemoteAddrExtractor struct{}

func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return hostOnly(r.RemoteAddr)
}

// TrustedProxyConfig names the reverse proxies whose forwarding headers
// may be believed.
type TrustedProxyConfig struct {
	Enabled      bool
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr falls inside a trusted range.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	host, err := hostOnly(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig reads the proxy trust settings:
//
//	RATE_LIMIT_TRUST_PROXY      "true" enables header-based extraction
//	RATE_LIMIT_TRUSTED_PROXIES  comma-separated IPs or CIDR ranges
//
// Enabling trust without naming at least one proxy is a configuration
// error: trusting all headers would let any client rotate its apparent IP.
func LoadTrustedProxyConfig() (*TrustedProxyConfig, error) {
	config := &TrustedProxyConfig{
		Enabled:      os.Getenv("RATE_LIMIT_TRUST_PROXY") == "true",
		AllowedCIDRs: []netip.Prefix{},
	}
	if !config.Enabled {
		return config, nil
	}

	raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_TRUSTED_PROXIES"))
	if raw == "" {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prefix, err := parseProxyEntry(entry)
		if err != nil {
			return nil, err
		}
		config.AllowedCIDRs = append(config.AllowedCIDRs, prefix)
	}
	if len(config.AllowedCIDRs) == 0 {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but no valid proxies found in RATE_LIMIT_TRUSTED_PROXIES")
	}
	return config, nil
}

// parseProxyEntry accepts either CIDR notation or a bare IP, which is
// widened to a single-address prefix.
func parseProxyEntry(entry string) (netip.Prefix, error) {
	if prefix, err := netip.ParsePrefix(entry); err == nil {
		return prefix, nil
	}
	ip, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid IP or CIDR format '%s'", entry)
	}
	bits := 32
	if !ip.Is4() {
		bits = 128
	}
	return netip.PrefixFrom(ip, bits), nil
}

// TrustedProxyExtractor believes X-Forwarded-For / X-Real-IP, but only when
// the direct peer is a configured proxy. Anything else falls back to
// RemoteAddr, with a warning when forwarding headers were present anyway.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

func NewTrustedProxyExtractor(config TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: config}
}

func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return hostOnly(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted proxy attempting to set X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			slog.Warn("untrusted proxy attempting to set X-Real-IP",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_real_ip", xri))
		}
		return hostOnly(r.RemoteAddr)
	}

	// X-Forwarded-For holds "client, proxy1, proxy2"; the client is first.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := firstForwardedIP(xff); ip != "" {
			return ip, nil
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String(), nil
		}
	}
	return hostOnly(r.RemoteAddr)
}

// hostOnly strips the port from "host:port", tolerating bare IPs and
// bracketed IPv6 forms.
func hostOnly(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err == nil {
		return host, nil
	}
	if ip := net.ParseIP(addr); ip != nil {
		return ip.String(), nil
	}
	return "", fmt.Errorf("invalid address format: %s", addr)
}

// firstForwardedIP returns the first valid IP in a comma-separated list,
// or "" when the leading entry is not an IP.
func firstForwardedIP(s string) string {
	first := s
	if i := strings.IndexByte(s, ','); i >= 0 {
		first = s[:i]
	}
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
