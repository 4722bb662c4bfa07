package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthDevModeAllowsEverything(t *testing.T) {
	cfg := config.NewConfig()
	a := newAuth(cfg)
	assert.True(t, a.devMode())

	req := httptest.NewRequest(http.MethodGet, "/api/weather-tide", nil)
	rec := httptest.NewRecorder()
	a.requireClient(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.requireAdmin(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cleanup", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireClient(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Tidecast.Auth.ClientAPIKey = "client-key"
	cfg.Tidecast.Auth.AdminSecret = "admin-secret"
	a := newAuth(cfg)

	// No key: rejected.
	rec := httptest.NewRecorder()
	a.requireClient(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Client key accepted.
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("x-api-key", "client-key")
	rec = httptest.NewRecorder()
	a.requireClient(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Admin secret also opens client routes.
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("x-admin-secret", "admin-secret")
	rec = httptest.NewRecorder()
	a.requireClient(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong key rejected.
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("x-api-key", "nope")
	rec = httptest.NewRecorder()
	a.requireClient(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Tidecast.Auth.ClientAPIKey = "client-key"
	cfg.Tidecast.Auth.AdminSecret = "admin-secret"
	a := newAuth(cfg)

	// The client key never opens admin routes.
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("x-api-key", "client-key")
	rec := httptest.NewRecorder()
	a.requireAdmin(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("x-admin-secret", "admin-secret")
	rec = httptest.NewRecorder()
	a.requireAdmin(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterWindow(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Tidecast.RateLimit.Limit = 2
	cfg.Tidecast.RateLimit.WindowSeconds = 60

	l := newRateLimiter(cfg)
	current := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }

	assert.True(t, l.allow("ip|/route", 0))
	assert.True(t, l.allow("ip|/route", 0))
	assert.False(t, l.allow("ip|/route", 0))

	// A different key has its own counter.
	assert.True(t, l.allow("other|/route", 0))

	// The counter resets once the window passes.
	current = current.Add(61 * time.Second)
	assert.True(t, l.allow("ip|/route", 0))
}

func TestRateLimiterPerRouteOverride(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Tidecast.RateLimit.Limit = 100
	l := newRateLimiter(cfg)

	assert.True(t, l.allow("k", 1))
	assert.False(t, l.allow("k", 1))
}

func TestRateLimitResponse(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Tidecast.RateLimit.Limit = 1
	l := newRateLimiter(cfg)

	handler := l.limit(0, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/notices", nil)
	req.RemoteAddr = "10.0.0.1:40000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

func TestCORSMiddleware(t *testing.T) {
	handler := corsMiddleware(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/notices", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "x-api-key")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notices", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoverMiddleware(t *testing.T) {
	handler := recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStatusForKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusForKind(exception.KindValidation))
	assert.Equal(t, http.StatusUnauthorized, statusForKind(exception.KindAuth))
	assert.Equal(t, http.StatusNotFound, statusForKind(exception.KindNotFound))
	assert.Equal(t, http.StatusTooManyRequests, statusForKind(exception.KindRateLimit))
	assert.Equal(t, http.StatusGatewayTimeout, statusForKind(exception.KindUpstreamTimeout))
	assert.Equal(t, http.StatusInternalServerError, statusForKind(exception.KindUpstreamFetch))
	assert.Equal(t, http.StatusInternalServerError, statusForKind(exception.KindUnhandled))
}
