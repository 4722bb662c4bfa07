// Package kma fetches Korea Meteorological Administration feeds: the sea
// observation CSV, the short-term grid forecast JSON and the medium-term
// land/marine forecast CSVs.
package kma

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
	logger "github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

const ModuleKMAClient = "KMAClient"

// Client calls the KMA endpoints. All methods honor the context deadline in
// addition to the configured per-call timeout.
type Client struct {
	cfg    config.KMAConfig
	client *http.Client
}

// NewClient creates a KMA client. An empty auth key is a configuration error;
// collectors must never run against the public endpoints without one.
func NewClient(cfg config.KMAConfig) (*Client, error) {
	if cfg.AuthKey == "" {
		return nil, exception.NewAppErrorf(ModuleKMAClient, exception.KindValidation, "KMA auth key is not configured")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// FetchSeaObservations retrieves every station's observation row for the
// given YYYYMMDDHHMM KST request time.
func (c *Client) FetchSeaObservations(ctx context.Context, tm string) ([]SeaObsRecord, error) {
	endpoint := fmt.Sprintf("%s/sea_obs.php?tm=%s&stn=0&help=0&authKey=%s", c.cfg.HubBaseURL, tm, url.QueryEscape(c.cfg.AuthKey))

	raw, err := c.fetchRaw(ctx, endpoint, "sea_obs")
	if err != nil {
		return nil, err
	}
	text, err := decodeEUCKR(raw)
	if err != nil {
		return nil, exception.NewAppError(ModuleKMAClient, exception.KindUpstreamFetch, "failed to decode sea_obs payload", err, false)
	}
	records := parseSeaObsLines(text)
	logger.Debugf("sea_obs returned %d data rows for tm=%s", len(records), tm)
	return records, nil
}

// FetchShortTermForecast retrieves the grid forecast items for one (nx, ny)
// cell at the given base date/time. A non-"00" result code is an upstream
// failure even when HTTP succeeds.
func (c *Client) FetchShortTermForecast(ctx context.Context, baseDate, baseTime string, nx, ny int) ([]ShortTermItem, error) {
	params := url.Values{}
	params.Set("pageNo", "1")
	params.Set("numOfRows", "1000")
	params.Set("dataType", "JSON")
	params.Set("base_date", baseDate)
	params.Set("base_time", baseTime)
	params.Set("nx", fmt.Sprintf("%d", nx))
	params.Set("ny", fmt.Sprintf("%d", ny))
	params.Set("authKey", c.cfg.AuthKey)

	endpoint := fmt.Sprintf("%s/getVilageFcst?%s", c.cfg.ForecastBaseURL, params.Encode())

	raw, err := c.fetchRaw(ctx, endpoint, "vilage_fcst")
	if err != nil {
		return nil, err
	}

	var payload vilageFcstResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, exception.NewAppError(ModuleKMAClient, exception.KindUpstreamFetch, "failed to decode grid forecast response", err, false)
	}
	if payload.Response.Header.ResultCode != "00" {
		msg := fmt.Sprintf("grid forecast returned result code %s: %s",
			payload.Response.Header.ResultCode, payload.Response.Header.ResultMsg)
		return nil, exception.NewAppErrorf(ModuleKMAClient, exception.KindUpstreamFetch, "%s", msg)
	}
	return payload.Response.Body.Items.Item, nil
}

// FetchMediumTermForecast retrieves the medium-term feed of the given kind
// (MediumTermTemperature or MediumTermMarine) as header-mapped records.
func (c *Client) FetchMediumTermForecast(ctx context.Context, kind string) ([]MediumTermRecord, error) {
	var path string
	switch kind {
	case MediumTermTemperature:
		path = "fct_afs_wc.php"
	case MediumTermMarine:
		path = "fct_afs_wo.php"
	default:
		return nil, exception.NewAppErrorf(ModuleKMAClient, exception.KindValidation, "unknown medium-term feed kind: %s", kind)
	}
	endpoint := fmt.Sprintf("%s/%s?disp=1&authKey=%s", c.cfg.HubBaseURL, path, url.QueryEscape(c.cfg.AuthKey))

	raw, err := c.fetchRaw(ctx, endpoint, kind)
	if err != nil {
		return nil, err
	}
	text, err := decodeEUCKR(raw)
	if err != nil {
		return nil, exception.NewAppError(ModuleKMAClient, exception.KindUpstreamFetch, "failed to decode medium-term payload", err, false)
	}
	records := parseFramedRecords(text)
	logger.Debugf("medium-term %s feed returned %d records", kind, len(records))
	return records, nil
}

func (c *Client) fetchRaw(ctx context.Context, endpoint, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, exception.NewAppError(ModuleKMAClient, exception.KindUnhandled, "failed to create request for "+name, err, false)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeoutError(err) {
			return nil, exception.NewAppError(ModuleKMAClient, exception.KindUpstreamTimeout, name+" request timeout", err, true)
		}
		return nil, exception.NewAppError(ModuleKMAClient, exception.KindUpstreamFetch, name+" request failed", err, true)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exception.NewAppError(ModuleKMAClient, exception.KindUpstreamFetch, "failed to read "+name+" response body", err, true)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		msg := fmt.Sprintf("%s returned status %d: %s", name, resp.StatusCode, snippet)
		return nil, exception.NewAppError(ModuleKMAClient, exception.KindUpstreamFetch, msg, errors.New(snippet), resp.StatusCode >= 500 || resp.StatusCode == http.StatusForbidden)
	}
	return body, nil
}

func isTimeoutError(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
