package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"places-proxy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *GoogleClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGoogleClient("test-key", WithBaseURL(srv.URL+"/"), WithTimeout(time.Second))
}

func TestGoogleClient_Autocomplete(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/autocomplete/json", r.URL.Path)
		assert.Equal(t, "Pizza Hut", r.URL.Query().Get("input"))
		assert.Equal(t, "tok-1", r.URL.Query().Get("sessiontoken"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","predictions":[{"description":"Pizza Hut Toronto","place_id":"abc123"}]}`))
	})

	resp, err := client.Autocomplete(context.Background(), "Pizza Hut", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOK, resp.Status)
	assert.Equal(t, http.StatusOK, resp.HTTPStatus)
	assert.Equal(t, []models.Prediction{{Description: "Pizza Hut Toronto", PlaceID: "abc123"}}, resp.Predictions)
}

func TestGoogleClient_AutocompleteOmitsEmptySessionToken(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["sessiontoken"]
		assert.False(t, present)
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","predictions":[]}`))
	})

	resp, err := client.Autocomplete(context.Background(), "nowhere", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusZeroResults, resp.Status)
	assert.Empty(t, resp.Predictions)
}

func TestGoogleClient_Details(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "abc123", r.URL.Query().Get("place_id"))
		assert.Equal(t, detailsFields, r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`{"status":"OK","result":{"geometry":{"location":{"lat":43.65,"lng":-79.38}},"name":"Pizza Hut"}}`))
	})

	resp, err := client.Details(context.Background(), "abc123", "")
	require.NoError(t, err)
	require.NotNil(t, resp.Location())
	assert.Equal(t, models.LatLng{Lat: 43.65, Lng: -79.38}, *resp.Location())
	assert.Equal(t, "Pizza Hut", resp.Result.Name)
}

func TestGoogleClient_UpstreamErrorStatusIsCarried(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`))
	})

	resp, err := client.Details(context.Background(), "abc123", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.HTTPStatus)
	assert.Equal(t, "REQUEST_DENIED", resp.Status)
	assert.Equal(t, "The provided API key is invalid.", resp.ErrorMessage)
	assert.Nil(t, resp.Location())
}

func TestGoogleClient_InvalidJSON(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := client.Autocomplete(context.Background(), "Pizza", "")
	assert.Error(t, err)
}

func TestGoogleClient_RateLimitHonoursContext(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	})
	WithRateLimit(0.001, 1)(client)

	_, err := client.Autocomplete(context.Background(), "first", "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Autocomplete(ctx, "second", "")
	assert.Error(t, err)
}

func TestGoogleClient_Configured(t *testing.T) {
	assert.True(t, NewGoogleClient("k").Configured())
	assert.False(t, NewGoogleClient("").Configured())
}
