package httptransport

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hkidcheck/internal/platform/metrics"
	ratelimit "hkidcheck/internal/ratelimit/middleware"
	"hkidcheck/internal/ratelimit/store/bucket"
	"hkidcheck/internal/verification"
	vmetrics "hkidcheck/internal/verification/metrics"
	"hkidcheck/internal/verification/service"
	"hkidcheck/pkg/hkid"
	"hkidcheck/pkg/platform/middleware/metadata"
	"hkidcheck/pkg/platform/middleware/requestid"
	"hkidcheck/pkg/testutil"
)

func newRouter(t *testing.T, cfg Config) (http.Handler, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	reg := metrics.New()

	svc, err := verification.NewService(hkid.NewEngine(),
		service.WithLogger(logger),
		service.WithMetrics(vmetrics.New(reg)),
	)
	require.NoError(t, err)

	cfg.Logger = logger
	cfg.MetricsHandler = reg.Handler()
	return NewRouter(cfg, verification.NewHandler(svc, logger)), buf
}

func limitOnePerMinute() chi.Middlewares {
	limiter := ratelimit.New(bucket.NewInMemoryBucketStore(), slog.New(slog.DiscardHandler), 1, time.Minute)
	return chi.Middlewares{limiter.RateLimit}
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newRouter(t, Config{})
	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "status", "ok")
	assert.NotEmpty(t, rr.Header().Get(requestid.Header))
}

func TestRouter_ValidateUnderV1(t *testing.T) {
	router, logs := newRouter(t, Config{})
	req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/hkid/validate", map[string]string{"value": "K123456(8)"})
	req.Header.Set(requestid.Header, "abc-123")

	rr := testutil.DoRequest(router, req)
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "valid", true)
	assert.Equal(t, "abc-123", rr.Header().Get(requestid.Header))

	assert.Contains(t, logs.String(), `"request_id":"abc-123"`)
	assert.NotContains(t, logs.String(), "K123456", "raw identifiers must not reach the access log")
}

func TestRouter_MetricsExposesValidations(t *testing.T) {
	router, _ := newRouter(t, Config{})
	testutil.PostJSON(t, router, "/v1/hkid/validate", map[string]string{"value": "K123456(7)"})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(t, rr)
	body := string(testutil.ReadBody(t, rr))
	assert.Contains(t, body, `hkid_validations_total{outcome="checksum_mismatch",shape="combined"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestRouter_UnknownRoutes(t *testing.T) {
	router, _ := newRouter(t, Config{})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/v1/hkid/validate"))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/v1/hkid/lookup"))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestRouter_RateLimitOnlyGuardsAPI(t *testing.T) {
	router, _ := newRouter(t, Config{APIMiddleware: limitOnePerMinute()})

	body := map[string]string{"value": "K123456(8)"}
	testutil.AssertStatusOK(t, testutil.PostJSON(t, router, "/v1/hkid/validate", body))

	rr := testutil.PostJSON(t, router, "/v1/hkid/validate", body)
	testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
	testutil.AssertJSONContains(t, rr, "error", "rate_limit_exceeded")

	for range 3 {
		testutil.AssertStatusOK(t, testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz")))
	}
}

func TestRouter_RateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	router, _ := newRouter(t, Config{APIMiddleware: limitOnePerMinute()})

	codes := make([]int, 0, 5)
	for i := range 5 {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/hkid/validate", map[string]string{"value": "K123456(8)"})
		req.RemoteAddr = "203.0.113.7:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		codes = append(codes, testutil.DoRequest(router, req).Code)
	}
	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
}

func TestRouter_RateLimitUsesForwardedForFromTrustedProxy(t *testing.T) {
	proxies, err := metadata.ParseTrustedProxies([]string{"203.0.113.7"})
	require.NoError(t, err)
	router, _ := newRouter(t, Config{
		APIMiddleware: limitOnePerMinute(),
		ClientIP:      metadata.NewResolver(proxies),
	})

	send := func(client string) int {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/hkid/validate", map[string]string{"value": "K123456(8)"})
		req.RemoteAddr = "203.0.113.7:5555"
		req.Header.Set("X-Forwarded-For", client)
		return testutil.DoRequest(router, req).Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
}
