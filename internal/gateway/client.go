// Package gateway is the HTTP client for the places proxy: place search and
// resolution, link ingestion, and the saved marker store.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"places-proxy/internal/models"
)

const (
	// MaxSuggestions caps how many predictions SearchPlaces returns.
	MaxSuggestions = 6

	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 1 << 20
)

var (
	// ErrNotConfigured is returned by every call when no proxy address is set.
	ErrNotConfigured = errors.New("gateway: proxy url not configured")
	// ErrEmptyLink is returned by IngestLink for a blank link, before any request is made.
	ErrEmptyLink = errors.New("gateway: link is empty")
	// ErrNoLocation means the place resolved with status OK but without geometry.
	ErrNoLocation = errors.New("gateway: place has no location")
)

// UpstreamError is a non-OK status reported by the places API.
type UpstreamError struct {
	Status  string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway: upstream status %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gateway: upstream status %s", e.Status)
}

// RequestError is a non-2xx answer from one of the proxy's own endpoints.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("gateway: http %d: %s", e.StatusCode, e.Message)
}

// Config is the explicit client configuration. An empty BaseURL leaves the
// client unconfigured.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the places proxy.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client. A trailing slash on BaseURL is ignored.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		base: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http: hc,
	}
}

// Configured reports whether a proxy address is set.
func (c *Client) Configured() bool {
	return c.base != ""
}

// HealthCheck reports whether the proxy answers its health endpoint with 2xx.
func (c *Client) HealthCheck(ctx context.Context) bool {
	if !c.Configured() {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// SearchPlaces returns up to MaxSuggestions predictions for query, in upstream
// order. A non-OK upstream status is returned as *UpstreamError.
func (c *Client) SearchPlaces(ctx context.Context, query, sessionToken string) ([]models.Suggestion, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("query", query)
	if sessionToken != "" {
		params.Set("sessionToken", sessionToken)
	}

	var out models.AutocompleteResponse
	if _, err := c.getJSON(ctx, "/api/places", params, &out); err != nil {
		return nil, fmt.Errorf("gateway: search places: %w", err)
	}
	if out.Status != models.StatusOK {
		return nil, &UpstreamError{Status: out.Status, Message: out.ErrorMessage}
	}

	n := len(out.Predictions)
	if n > MaxSuggestions {
		n = MaxSuggestions
	}
	suggestions := make([]models.Suggestion, 0, n)
	for _, p := range out.Predictions[:n] {
		suggestions = append(suggestions, models.Suggestion{Name: p.Description, PlaceID: p.PlaceID})
	}
	return suggestions, nil
}

// ResolvePlace returns the coordinates for placeID.
func (c *Client) ResolvePlace(ctx context.Context, placeID, sessionToken string) (*models.LatLng, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("placeId", placeID)
	if sessionToken != "" {
		params.Set("sessionToken", sessionToken)
	}

	var out models.DetailsResponse
	if _, err := c.getJSON(ctx, "/api/place-details", params, &out); err != nil {
		return nil, fmt.Errorf("gateway: resolve place: %w", err)
	}
	if out.Status != models.StatusOK {
		return nil, &UpstreamError{Status: out.Status, Message: out.ErrorMessage}
	}
	loc := out.Location()
	if loc == nil {
		return nil, ErrNoLocation
	}
	return loc, nil
}

// IngestLink submits a shared link. The proxy only acknowledges it.
func (c *Client) IngestLink(ctx context.Context, link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return ErrEmptyLink
	}
	if !c.Configured() {
		return ErrNotConfigured
	}
	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/ingest", map[string]string{"url": link}, &out); err != nil {
		return fmt.Errorf("gateway: ingest link: %w", err)
	}
	return nil
}

// ListMarkers returns the saved markers in insertion order.
func (c *Client) ListMarkers(ctx context.Context) ([]models.Marker, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	var out struct {
		Markers []models.Marker `json:"markers"`
	}
	code, err := c.getJSON(ctx, "/api/markers", nil, &out)
	if err != nil {
		return nil, fmt.Errorf("gateway: list markers: %w", err)
	}
	if code < 200 || code >= 300 {
		return nil, fmt.Errorf("gateway: list markers: %w", &RequestError{StatusCode: code, Message: "unexpected status"})
	}
	return out.Markers, nil
}

// AddMarker saves a marker and returns it as stored.
func (c *Client) AddMarker(ctx context.Context, lat, lng float64, label string) (*models.Marker, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	body := map[string]any{"latitude": lat, "longitude": lng, "name": label}
	var out struct {
		Marker models.Marker `json:"marker"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/markers", body, &out); err != nil {
		return nil, fmt.Errorf("gateway: add marker: %w", err)
	}
	return &out.Marker, nil
}

// getJSON decodes the body whatever the status code; the places endpoints
// answer errors in the same shape as successes.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) (int, error) {
	target := c.base + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

// sendJSON turns non-2xx answers into *RequestError carrying the "error" field.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var raw json.RawMessage
	code, err := c.do(req, &raw)
	if err != nil && code == 0 {
		return err
	}
	if code < 200 || code >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		if e.Error == "" {
			e.Error = http.StatusText(code)
		}
		return &RequestError{StatusCode: code, Message: e.Error}
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request, out any) (int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("status %d: decode response: %w", resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
