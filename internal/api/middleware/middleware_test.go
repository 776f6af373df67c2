package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", seen)
	assert.Equal(t, "upstream-id", rec.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/owners", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "storage_error", body.Kind)
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "boom")
}

func TestLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	handler := RequestID(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})))

	req := httptest.NewRequest("POST", "/api/v1/owners", nil)
	req.Header.Set(TenantHeader, "org-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := logs.String()
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"size":2`)
	assert.Contains(t, out, `"org_id":"org-1"`)
	assert.Contains(t, out, `"request_id":"`+rec.Header().Get(RequestIDHeader)+`"`)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, 60)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		allowed, remaining, _ := rl.Allow("client")
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, _ := rl.Allow("client")
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, _, _ = rl.Allow("other")
	assert.True(t, allowed)
}

func TestRateLimit_Middleware(t *testing.T) {
	handler := RateLimit(2, 60)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "rate_limited", decodeError(t, rec).Kind)
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
		assert.Equal(t, strconv.Itoa(2), rec.Header().Get("X-RateLimit-Limit"))
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRateLimitByUser_KeysOnActor(t *testing.T) {
	jwtService := newJWT()
	tokenA, err := jwtService.GenerateToken("01HZZZZZZZZZZZZZZZZZZZZZZA", "a@example.com")
	require.NoError(t, err)
	tokenB, err := jwtService.GenerateToken("01HZZZZZZZZZZZZZZZZZZZZZZB", "b@example.com")
	require.NoError(t, err)

	handler := Actor(jwtService)(RateLimitByUser(1, 60)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	do := func(token string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do(tokenA))
	assert.Equal(t, http.StatusOK, do(tokenB))
	assert.Equal(t, http.StatusTooManyRequests, do(tokenA))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"remote addr", "192.0.2.1:1234", nil, "192.0.2.1"},
		{"ipv6 remote", "[2001:db8::1]:443", nil, "2001:db8::1"},
		{"forwarded for", "192.0.2.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "203.0.113.5"},
		{"real ip", "192.0.2.1:1234", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
		{"no port", "192.0.2.1", nil, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
