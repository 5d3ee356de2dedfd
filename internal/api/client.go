// Package api communicates with the waktu solat HTTP data source: monthly
// prayer schedules per JAKIM zone and the zone directory itself.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.waktusolat.app"

// Distinct upstream failure kinds. Callers match with errors.Is.
var (
	// ErrZoneNotFound means the requested zone code (or zone/month combo)
	// does not exist upstream (HTTP 404).
	ErrZoneNotFound = errors.New("zone not found")
	// ErrUpstreamServer means the data source failed server-side (HTTP 5xx).
	ErrUpstreamServer = errors.New("upstream server error")
)

// Client communicates with the prayer-time data source.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the public waktu solat API.
	// Exported for testing with httptest and for api_url overrides.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// FetchMonth fetches the monthly prayer schedule for a zone.
// The returned schedule is validated before being handed to callers.
func (c *Client) FetchMonth(zone string, year int, month time.Month) (*MonthlySchedule, error) {
	endpoint := fmt.Sprintf("%s/v2/solat/%s", c.BaseURL, url.PathEscape(zone))

	params := url.Values{}
	params.Set("year", fmt.Sprintf("%d", year))
	params.Set("month", fmt.Sprintf("%d", int(month)))

	body, err := c.get(endpoint+"?"+params.Encode(), fmt.Sprintf("zone %s %d-%02d", zone, year, month))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sched MonthlySchedule
	if err := json.NewDecoder(body).Decode(&sched); err != nil {
		return nil, fmt.Errorf("failed to decode schedule response: %w", err)
	}

	if err := sched.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule from data source: %w", err)
	}

	return &sched, nil
}

// FetchZones fetches the full JAKIM zone directory.
func (c *Client) FetchZones() ([]Zone, error) {
	body, err := c.get(c.BaseURL+"/zones", "zone directory")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var zones []Zone
	if err := json.NewDecoder(body).Decode(&zones); err != nil {
		return nil, fmt.Errorf("failed to decode zone directory: %w", err)
	}

	return zones, nil
}

// FetchZone fetches directory entries for a single zone code.
func (c *Client) FetchZone(code string) ([]Zone, error) {
	body, err := c.get(c.BaseURL+"/zones/"+url.PathEscape(code), "zone "+code)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var zones []Zone
	if err := json.NewDecoder(body).Decode(&zones); err != nil {
		return nil, fmt.Errorf("failed to decode zone %s: %w", code, err)
	}

	return zones, nil
}

// get performs the request and maps HTTP status codes onto the error kinds
// the rest of the program distinguishes.
func (c *Client) get(reqURL, what string) (io.ReadCloser, error) {
	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", what, ErrZoneNotFound)
	case resp.StatusCode >= 500:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: status %d: %w", what, resp.StatusCode, ErrUpstreamServer)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: API returned status %d", what, resp.StatusCode)
	}
}
