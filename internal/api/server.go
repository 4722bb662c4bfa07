package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/metrics"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// Per-route rate limit overrides; everything else uses the configured default.
const (
	adminRateLimit = 50
	eventRateLimit = 200
)

// RouterParams collects everything the router needs.
type RouterParams struct {
	fx.In

	Config  *config.Config
	Metrics *metrics.Metrics
	Weather *WeatherHandler
	Notices *NoticeHandler
	Ads     *AdHandler
	Collect *CollectHandler
}

// NewRouter builds the full route table with middleware applied.
func NewRouter(p RouterParams) *mux.Router {
	authn := newAuth(p.Config)
	limiter := newRateLimiter(p.Config)

	router := mux.NewRouter()
	router.Use(metricsMiddleware(p.Metrics))
	router.Use(mux.MiddlewareFunc(recoverMiddleware))
	router.Use(mux.MiddlewareFunc(corsMiddleware))
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorEnvelope{Error: "method not allowed"})
	})
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: "not found"})
	})

	// Client read APIs.
	router.Handle("/api/weather-tide",
		limiter.limit(0, authn.requireClient(http.HandlerFunc(p.Weather.WeatherTide)))).
		Methods(http.MethodGet, http.MethodOptions)
	router.Handle("/api/medium-weather",
		limiter.limit(0, authn.requireClient(http.HandlerFunc(p.Weather.MediumWeather)))).
		Methods(http.MethodGet, http.MethodOptions)
	router.Handle("/api/notices",
		limiter.limit(0, authn.requireClient(http.HandlerFunc(p.Notices.Notices)))).
		Methods(http.MethodGet, http.MethodOptions)

	// Event tracking accepts either key and runs with a raised limit.
	router.Handle("/api/ad-events",
		limiter.limit(eventRateLimit, authn.requireClient(http.HandlerFunc(p.Ads.AdEvents)))).
		Methods(http.MethodPost, http.MethodOptions)

	// Admin endpoints.
	router.Handle("/api/ads",
		limiter.limit(adminRateLimit, authn.requireAdmin(http.HandlerFunc(p.Ads.Ads)))).
		Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/api/collect/{job}",
		limiter.limit(adminRateLimit, authn.requireAdmin(http.HandlerFunc(p.Collect.Collect)))).
		Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/api/tide-import",
		limiter.limit(adminRateLimit, authn.requireAdmin(http.HandlerFunc(p.Collect.TideImport)))).
		Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/api/cleanup",
		limiter.limit(adminRateLimit, authn.requireAdmin(http.HandlerFunc(p.Collect.Cleanup)))).
		Methods(http.MethodPost, http.MethodOptions)

	// Operational endpoints, unauthenticated.
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(p.Metrics.Registry(), promhttp.HandlerOpts{})).
		Methods(http.MethodGet)

	return router
}

// NewServer creates the HTTP server and ties it to the fx lifecycle.
func NewServer(lc fx.Lifecycle, cfg *config.Config, router *mux.Router) *http.Server {
	serverCfg := cfg.Tidecast.Server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", serverCfg.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(serverCfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(serverCfg.WriteTimeoutSeconds) * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Infof("HTTP server listening on %s", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Errorf("HTTP server stopped: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Infof("shutting down HTTP server")
			return server.Shutdown(ctx)
		},
	})
	return server
}
