package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/metrics"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// corsMiddleware echoes the fixed CORS header set on every response and
// short-circuits preflight requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type, x-api-key, x-admin-secret")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware converts a handler panic into a 500 response.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// auth performs header-based authentication. With no keys configured at all,
// every check degrades to allow-with-warning so a development instance works
// out of the box.
type auth struct {
	clientKey   string
	adminSecret string
}

func newAuth(cfg *config.Config) *auth {
	return &auth{
		clientKey:   cfg.Tidecast.Auth.ClientAPIKey,
		adminSecret: cfg.Tidecast.Auth.AdminSecret,
	}
}

func (a *auth) devMode() bool {
	return a.clientKey == "" && a.adminSecret == ""
}

// requireClient accepts either the client API key or the admin secret.
func (a *auth) requireClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.devMode() {
			logger.Warnf("no API keys configured; allowing unauthenticated request to %s", r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}
		if a.clientKey != "" && r.Header.Get("x-api-key") == a.clientKey {
			next.ServeHTTP(w, r)
			return
		}
		if a.adminSecret != "" && r.Header.Get("x-admin-secret") == a.adminSecret {
			next.ServeHTTP(w, r)
			return
		}
		writeJSON(w, http.StatusUnauthorized, errorEnvelope{Error: "unauthorized"})
	})
}

// requireAdmin accepts the admin secret only.
func (a *auth) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.adminSecret == "" {
			logger.Warnf("no admin secret configured; allowing unauthenticated admin request to %s", r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("x-admin-secret") == a.adminSecret {
			next.ServeHTTP(w, r)
			return
		}
		writeJSON(w, http.StatusUnauthorized, errorEnvelope{Error: "unauthorized"})
	})
}

// rateLimiter is a process-local fixed-window limiter keyed by client
// identifier and route. Best effort: counters reset on restart and are not
// shared across instances.
type rateLimiter struct {
	mu           sync.Mutex
	window       time.Duration
	defaultLimit int
	entries      map[string]*rateEntry
	now          func() time.Time
}

type rateEntry struct {
	count   int
	resetAt time.Time
}

func newRateLimiter(cfg *config.Config) *rateLimiter {
	limit := cfg.Tidecast.RateLimit.Limit
	if limit <= 0 {
		limit = 100
	}
	window := time.Duration(cfg.Tidecast.RateLimit.WindowSeconds) * time.Second
	if window <= 0 {
		window = time.Minute
	}
	return &rateLimiter{
		window:       window,
		defaultLimit: limit,
		entries:      make(map[string]*rateEntry),
		now:          time.Now,
	}
}

// allow counts one request for key and reports whether it is within limit.
func (l *rateLimiter) allow(key string, limit int) bool {
	if limit <= 0 {
		limit = l.defaultLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetAt) {
		l.entries[key] = &rateEntry{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	entry.count++
	return entry.count <= limit
}

// limit wraps a handler with a per-route request limit; 0 uses the default.
func (l *rateLimiter) limit(limit int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r) + "|" + r.URL.Path
		if !l.allow(key, limit) {
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorEnvelope{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the first X-Forwarded-For hop over the socket address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// statusRecorder captures the response status for the metrics middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// metricsMiddleware records request counts and durations per route template.
func metricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}
			m.ObserveHTTP(route, r.Method, rec.status, time.Since(started))
		})
	}
}
