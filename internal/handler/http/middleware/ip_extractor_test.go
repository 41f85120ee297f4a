package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
		wantErr    bool
	}{
		{name: "ipv4 with port", remoteAddr: "192.168.1.10:54321", want: "192.168.1.10"},
		{name: "ipv6 with port", remoteAddr: "[2001:db8::1]:8080", want: "2001:db8::1"},
		{name: "bare ipv4", remoteAddr: "127.0.0.1", want: "127.0.0.1"},
		{name: "garbage", remoteAddr: "not-an-address", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr

			got, err := (&RemoteAddrExtractor{}).ExtractIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func trustedConfig(t *testing.T, cidrs ...string) TrustedProxyConfig {
	t.Helper()
	config := TrustedProxyConfig{Enabled: true}
	for _, c := range cidrs {
		config.AllowedCIDRs = append(config.AllowedCIDRs, netip.MustParsePrefix(c))
	}
	return config
}

func TestTrustedProxyConfig_IsTrusted(t *testing.T) {
	config := trustedConfig(t, "10.0.0.0/8", "2001:db8::/32")

	assert.True(t, config.IsTrusted("10.1.2.3:443"))
	assert.True(t, config.IsTrusted("[2001:db8::9]:443"))
	assert.False(t, config.IsTrusted("192.168.1.1:443"))
	assert.False(t, config.IsTrusted("garbage"))
}

func TestTrustedProxyExtractor_TrustedPeerUsesForwardedFor(t *testing.T) {
	e := NewTrustedProxyExtractor(trustedConfig(t, "10.0.0.0/8"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.5")

	ip, err := e.ExtractIP(req)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestTrustedProxyExtractor_TrustedPeerFallsBackToRealIP(t *testing.T) {
	e := NewTrustedProxyExtractor(trustedConfig(t, "10.0.0.0/8"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:12345"
	req.Header.Set("X-Real-IP", "203.0.113.7")

	ip, err := e.ExtractIP(req)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestTrustedProxyExtractor_UntrustedPeerHeadersIgnored(t *testing.T) {
	e := NewTrustedProxyExtractor(trustedConfig(t, "10.0.0.0/8"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.9:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	ip, err := e.ExtractIP(req)
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.9", ip)
}

func TestTrustedProxyExtractor_DisabledAlwaysUsesRemoteAddr(t *testing.T) {
	e := NewTrustedProxyExtractor(TrustedProxyConfig{Enabled: false})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.9:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	ip, err := e.ExtractIP(req)
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.9", ip)
}

func TestTrustedProxyExtractor_InvalidForwardedForFallsThrough(t *testing.T) {
	e := NewTrustedProxyExtractor(trustedConfig(t, "10.0.0.0/8"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:12345"
	req.Header.Set("X-Forwarded-For", "not-an-ip, 10.0.0.5")

	ip, err := e.ExtractIP(req)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", ip)
}

func TestLoadTrustedProxyConfig(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "")

		config, err := LoadTrustedProxyConfig()
		require.NoError(t, err)
		assert.False(t, config.Enabled)
		assert.Empty(t, config.AllowedCIDRs)
	})

	t.Run("enabled with CIDR and bare IP", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")

		config, err := LoadTrustedProxyConfig()
		require.NoError(t, err)
		assert.True(t, config.Enabled)
		require.Len(t, config.AllowedCIDRs, 2)
		assert.Equal(t, "10.0.0.0/8", config.AllowedCIDRs[0].String())
		assert.Equal(t, "192.168.1.1/32", config.AllowedCIDRs[1].String())
	})

	t.Run("bare IPv6 widened to /128", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "2001:db8::1")

		config, err := LoadTrustedProxyConfig()
		require.NoError(t, err)
		require.Len(t, config.AllowedCIDRs, 1)
		assert.Equal(t, "2001:db8::1/128", config.AllowedCIDRs[0].String())
	})

	t.Run("enabled without proxies fails closed", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "")

		_, err := LoadTrustedProxyConfig()
		assert.Error(t, err)
	})

	t.Run("invalid entry fails closed", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8, not-an-ip")

		_, err := LoadTrustedProxyConfig()
		assert.Error(t, err)
	})
}
