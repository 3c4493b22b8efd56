package metadata

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hkidcheck/pkg/requestcontext"
)

func TestClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.10"})
	require.NoError(t, err)
	behindProxy := NewResolver(proxies)
	direct := NewResolver(nil)

	cases := []struct {
		name     string
		resolver *Resolver
		headers  map[string]string
		remote   string
		want     string
	}{
		{"untrusted peer ignores forwarded for", direct, map[string]string{"X-Forwarded-For": "10.0.0.1"}, "203.0.113.7:5555", "203.0.113.7"},
		{"untrusted peer ignores real ip", direct, map[string]string{"X-Real-IP": "198.51.100.7"}, "203.0.113.7:5555", "203.0.113.7"},
		{"trusted peer takes right-most untrusted hop", behindProxy, map[string]string{"X-Forwarded-For": "1.1.1.1, 203.0.113.5, 10.0.0.3"}, "10.0.0.2:80", "203.0.113.5"},
		{"trusted single address", behindProxy, map[string]string{"X-Forwarded-For": "203.0.113.5"}, "192.0.2.10:80", "203.0.113.5"},
		{"trusted peer real ip", behindProxy, map[string]string{"X-Real-IP": " 198.51.100.7 "}, "10.0.0.2:80", "198.51.100.7"},
		{"trusted peer garbage header", behindProxy, map[string]string{"X-Forwarded-For": "not-an-ip"}, "10.0.0.2:80", "10.0.0.2"},
		{"peer just outside trusted address", behindProxy, map[string]string{"X-Forwarded-For": "203.0.113.5"}, "192.0.2.11:80", "192.0.2.11"},
		{"remote addr ipv6", direct, nil, "[::1]:5555", "::1"},
		{"nothing set", direct, nil, "", "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, tc.resolver.ClientIP(r))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{" 10.1.2.3/8 ", "", "::1"})
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("::1/128"),
	}, prefixes)

	_, err = ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"proxy.internal"})
	assert.Error(t, err)
}

func TestClientMetadata(t *testing.T) {
	var gotIP, gotUA string
	h := NewResolver(nil).ClientMetadata(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.9:1234"
	r.Header.Set("User-Agent", "form-widget/1.0")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.0.2.9", gotIP)
	assert.Equal(t, "form-widget/1.0", gotUA)
}
