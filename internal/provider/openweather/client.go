// Package openweather fetches OpenWeatherMap data: the One Call 3.0
// current+daily payload and the 5-day/3-hour forecast.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

const ModuleOpenWeatherClient = "OpenWeatherClient"

// Client calls the OpenWeatherMap endpoints with metric units and Korean
// descriptions, matching what the mobile client renders.
type Client struct {
	cfg    config.OpenWeatherConfig
	client *http.Client
}

// NewClient creates an OpenWeatherMap client. A missing API key fails
// immediately rather than at the first request.
func NewClient(cfg config.OpenWeatherConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, exception.NewAppErrorf(ModuleOpenWeatherClient, exception.KindValidation, "OpenWeatherMap API key is not configured")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// FetchOneCall retrieves the current conditions plus the 8-day daily forecast
// for one coordinate. The hourly block is excluded; the 5-day forecast covers it.
func (c *Client) FetchOneCall(ctx context.Context, lat, lon float64) (*OneCallResponse, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%g", lat))
	params.Set("lon", fmt.Sprintf("%g", lon))
	params.Set("appid", c.cfg.APIKey)
	params.Set("units", "metric")
	params.Set("lang", "kr")
	params.Set("exclude", "minutely,hourly")

	var payload OneCallResponse
	if err := c.fetchJSON(ctx, c.cfg.OneCallURL+"?"+params.Encode(), "one_call", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchFiveDayForecast retrieves the 5-day/3-hour forecast for one coordinate.
func (c *Client) FetchFiveDayForecast(ctx context.Context, lat, lon float64) (*ForecastResponse, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%g", lat))
	params.Set("lon", fmt.Sprintf("%g", lon))
	params.Set("appid", c.cfg.APIKey)
	params.Set("units", "metric")
	params.Set("lang", "kr")

	var payload ForecastResponse
	if err := c.fetchJSON(ctx, c.cfg.ForecastURL+"?"+params.Encode(), "five_day_forecast", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) fetchJSON(ctx context.Context, endpoint, name string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return exception.NewAppError(ModuleOpenWeatherClient, exception.KindUnhandled, "failed to create request for "+name, err, false)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeoutError(err) {
			return exception.NewAppError(ModuleOpenWeatherClient, exception.KindUpstreamTimeout, name+" request timeout", err, true)
		}
		return exception.NewAppError(ModuleOpenWeatherClient, exception.KindUpstreamFetch, name+" request failed", err, true)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		msg := fmt.Sprintf("%s returned status %d: %s", name, resp.StatusCode, snippet)
		return exception.NewAppError(ModuleOpenWeatherClient, exception.KindUpstreamFetch, msg, errors.New(snippet), resp.StatusCode >= 500)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return exception.NewAppError(ModuleOpenWeatherClient, exception.KindUpstreamFetch, "failed to decode "+name+" response", err, false)
	}
	return nil
}

func isTimeoutError(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
