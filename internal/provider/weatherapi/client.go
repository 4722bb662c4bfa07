// Package weatherapi fetches WeatherAPI.com current conditions and
// multi-day hourly forecasts. Queries are "lat,lng" strings so a stored
// location key maps 1:1 onto a provider request.
package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

const ModuleWeatherAPIClient = "WeatherAPIClient"

// Client calls the WeatherAPI.com v1 endpoints. The forecast call uses a
// longer timeout than current conditions; a 14-day hourly payload is large.
type Client struct {
	cfg            config.WeatherAPIConfig
	currentClient  *http.Client
	forecastClient *http.Client
}

// NewClient creates a WeatherAPI client, failing fast on a missing API key.
func NewClient(cfg config.WeatherAPIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, exception.NewAppErrorf(ModuleWeatherAPIClient, exception.KindValidation, "WeatherAPI key is not configured")
	}
	currentTimeout := time.Duration(cfg.CurrentTimeoutSeconds) * time.Second
	if currentTimeout <= 0 {
		currentTimeout = 15 * time.Second
	}
	forecastTimeout := time.Duration(cfg.ForecastTimeoutSeconds) * time.Second
	if forecastTimeout <= 0 {
		forecastTimeout = 20 * time.Second
	}
	return &Client{
		cfg:            cfg,
		currentClient:  &http.Client{Timeout: currentTimeout},
		forecastClient: &http.Client{Timeout: forecastTimeout},
	}, nil
}

// FetchCurrent retrieves current conditions for a "lat,lng" query.
func (c *Client) FetchCurrent(ctx context.Context, query string, includeAQI bool) (*CurrentResponse, error) {
	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("q", query)
	params.Set("aqi", aqiFlag(includeAQI))

	var payload CurrentResponse
	if err := c.fetchJSON(ctx, c.currentClient, c.cfg.BaseURL+"/current.json?"+params.Encode(), "current", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchForecast retrieves the daily+hourly forecast for a "lat,lng" query.
func (c *Client) FetchForecast(ctx context.Context, query string, days int, includeAQI bool) (*ForecastResponse, error) {
	if days <= 0 {
		days = c.cfg.ForecastDays
	}
	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("q", query)
	params.Set("days", strconv.Itoa(days))
	params.Set("aqi", aqiFlag(includeAQI))
	params.Set("alerts", "no")

	var payload ForecastResponse
	if err := c.fetchJSON(ctx, c.forecastClient, c.cfg.BaseURL+"/forecast.json?"+params.Encode(), "forecast", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) fetchJSON(ctx context.Context, client *http.Client, endpoint, name string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return exception.NewAppError(ModuleWeatherAPIClient, exception.KindUnhandled, "failed to create request for "+name, err, false)
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeoutError(err) {
			return exception.NewAppError(ModuleWeatherAPIClient, exception.KindUpstreamTimeout, name+" request timeout", err, true)
		}
		return exception.NewAppError(ModuleWeatherAPIClient, exception.KindUpstreamFetch, name+" request failed", err, true)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		msg := fmt.Sprintf("%s returned status %d: %s", name, resp.StatusCode, snippet)
		return exception.NewAppError(ModuleWeatherAPIClient, exception.KindUpstreamFetch, msg, errors.New(snippet), resp.StatusCode >= 500)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return exception.NewAppError(ModuleWeatherAPIClient, exception.KindUpstreamFetch, "failed to decode "+name+" response", err, false)
	}
	return nil
}

func aqiFlag(include bool) string {
	if include {
		return "yes"
	}
	return "no"
}

func isTimeoutError(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
