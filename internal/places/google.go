// Package places talks to the third-party places API (autocomplete and details).
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"places-proxy/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the legacy Places web service root.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// detailsFields limits the details payload to what the app consumes.
	detailsFields = "geometry/location,name,formatted_address"

	defaultTimeout = 5 * time.Second

	httpMaxIdleConns    = 10
	httpIdleConnTimeout = 30 * time.Second

	// maxResponseBytes bounds how much of an upstream body is read.
	maxResponseBytes = 1 << 20
)

// Client is the upstream places API.
type Client interface {
	Autocomplete(ctx context.Context, input, sessionToken string) (*models.AutocompleteResponse, error)
	Details(ctx context.Context, placeID, sessionToken string) (*models.DetailsResponse, error)
}

// Option configures a GoogleClient.
type Option func(*GoogleClient)

// WithBaseURL overrides the API root. Used by tests.
func WithBaseURL(base string) Option {
	return func(g *GoogleClient) {
		if base != "" {
			g.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(g *GoogleClient) {
		if d > 0 {
			g.timeout = d
			g.httpClient.Timeout = d
		}
	}
}

// WithRateLimit throttles outbound calls to protect the API key quota.
// A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(g *GoogleClient) {
		if perSecond <= 0 {
			g.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// GoogleClient implements Client using the Places web service.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGoogleClient creates a Client bound to apiKey. The key may be empty; callers
// are expected to check Configured before issuing requests.
func NewGoogleClient(apiKey string, opts ...Option) *GoogleClient {
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	g := &GoogleClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configured reports whether an API key is present.
func (g *GoogleClient) Configured() bool {
	return g.apiKey != ""
}

// Autocomplete calls /autocomplete/json. The decoded body is returned even for
// non-OK statuses; HTTPStatus carries the upstream HTTP code.
func (g *GoogleClient) Autocomplete(ctx context.Context, input, sessionToken string) (*models.AutocompleteResponse, error) {
	params := url.Values{}
	params.Set("input", input)
	if sessionToken != "" {
		params.Set("sessiontoken", sessionToken)
	}

	var out models.AutocompleteResponse
	code, err := g.get(ctx, "/autocomplete/json", params, &out)
	if err != nil {
		return nil, fmt.Errorf("places: autocomplete: %w", err)
	}
	out.HTTPStatus = code

	log.Debug().Str("status", out.Status).Int("predictions", len(out.Predictions)).Msg("places: autocomplete")
	return &out, nil
}

// Details calls /details/json for a single place.
func (g *GoogleClient) Details(ctx context.Context, placeID, sessionToken string) (*models.DetailsResponse, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)
	if sessionToken != "" {
		params.Set("sessiontoken", sessionToken)
	}

	var out models.DetailsResponse
	code, err := g.get(ctx, "/details/json", params, &out)
	if err != nil {
		return nil, fmt.Errorf("places: details: %w", err)
	}
	out.HTTPStatus = code

	log.Debug().Str("status", out.Status).Str("place_id", placeID).Msg("places: details")
	return &out, nil
}

func (g *GoogleClient) get(ctx context.Context, path string, params url.Values, out any) (int, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limit: %w", err)
		}
	}

	// The key is appended last so it never shows up in logged parameter sets.
	params.Set("key", g.apiKey)
	reqURL := g.baseURL + path + "?" + params.Encode()

	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
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
