package httpmiddleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := RateLimit(ctx, RateLimitConfig{RPS: 0.001, Burst: 2})(okHandler())

	for i := range 2 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("10.0.0.1:1234"))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, requestFrom("10.0.0.1:5678"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"code":429,"message":"rate limit exceeded"}`, w.Body.String())

	// Other clients have their own bucket.
	w = httptest.NewRecorder()
	h.ServeHTTP(w, requestFrom("10.0.0.2:1234"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	h := RateLimit(context.Background(), RateLimitConfig{})(okHandler())
	for range 100 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("10.0.0.1:1"))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestLimiterSet_Evict(t *testing.T) {
	s := newLimiterSet(RateLimitConfig{RPS: 1, Idle: time.Minute})
	base := time.Now()
	s.now = func() time.Time { return base }

	_, ok := s.reserve("a")
	require.True(t, ok)

	s.now = func() time.Time { return base.Add(30 * time.Second) }
	_, ok = s.reserve("b")
	require.True(t, ok)

	s.now = func() time.Time { return base.Add(90 * time.Second) }
	s.evict()

	assert.NotContains(t, s.clients, "a")
	assert.Contains(t, s.clients, "b")
}

func TestClientIP(t *testing.T) {
	for _, tt := range []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"RemoteAddr", nil, "192.0.2.1:4000", "192.0.2.1"},
		{"RemoteAddrNoPort", nil, "192.0.2.1", "192.0.2.1"},
		{"ForwardedFor", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:1", "203.0.113.7"},
		{"RealIP", map[string]string{"X-Real-IP": "198.51.100.3"}, "10.0.0.1:1", "198.51.100.3"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
