package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hkidcheck/internal/ratelimit/metrics"
	"hkidcheck/internal/ratelimit/models"
	"hkidcheck/internal/ratelimit/store/bucket"
	"hkidcheck/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*models.RateLimitResult, error) {
	return nil, errors.New("store unavailable")
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func request(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/hkid/validate", nil)
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, "test"))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRateLimit(t *testing.T) {
	t.Run("rejects clients over budget", func(t *testing.T) {
		m := metrics.New(prometheus.NewRegistry())
		h := New(bucket.NewInMemoryBucketStore(), newLogger(), 2, time.Minute, WithMetrics(m)).RateLimit(okHandler)

		assert.Equal(t, http.StatusOK, serve(h, request("203.0.113.5")).Code)
		rr := serve(h, request("203.0.113.5"))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

		rr = serve(h, request("203.0.113.5"))
		require.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "60", rr.Header().Get("Retry-After"))
		assert.Contains(t, rr.Body.String(), "rate_limit_exceeded")
		assert.Equal(t, float64(1), testutil.ToFloat64(m.Rejections))
	})

	t.Run("budgets are per client", func(t *testing.T) {
		h := New(bucket.NewInMemoryBucketStore(), newLogger(), 1, time.Minute).RateLimit(okHandler)

		assert.Equal(t, http.StatusOK, serve(h, request("203.0.113.5")).Code)
		assert.Equal(t, http.StatusOK, serve(h, request("203.0.113.6")).Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(h, request("203.0.113.5")).Code)
	})

	t.Run("store errors fail open", func(t *testing.T) {
		m := metrics.New(prometheus.NewRegistry())
		h := New(failingStore{}, newLogger(), 1, time.Minute, WithMetrics(m)).RateLimit(okHandler)

		assert.Equal(t, http.StatusOK, serve(h, request("203.0.113.5")).Code)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.Errors))
	})

	t.Run("disabled passes everything", func(t *testing.T) {
		h := New(bucket.NewInMemoryBucketStore(), newLogger(), 1, time.Minute, WithDisabled(true)).RateLimit(okHandler)

		for range 3 {
			assert.Equal(t, http.StatusOK, serve(h, request("203.0.113.5")).Code)
		}
	})
}
