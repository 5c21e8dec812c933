package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleProviderDistanceAndTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/distancematrix/json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "driving", r.URL.Query().Get("mode"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{
				"status": "OK",
				"distance": {"value": 38500},
				"duration": {"value": 3900}
			}]}]
		}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(ProviderConfig{APIKey: "test-key", BaseURL: server.URL})

	result, err := provider.DistanceAndTime(context.Background(), testFrom, testTo)

	require.NoError(t, err)
	assert.Equal(t, 38.5, result.DistanceKm)
	assert.Equal(t, 65.0, result.DurationMin)
	assert.Equal(t, "google", result.Provider)
}

func TestGoogleProviderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "invalid key"}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(ProviderConfig{APIKey: "bad", BaseURL: server.URL})

	_, err := provider.DistanceAndTime(context.Background(), testFrom, testTo)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestGoogleProviderUnroutablePair(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]
		}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(ProviderConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := provider.DistanceAndTime(context.Background(), testFrom, testTo)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZERO_RESULTS")
}

func TestMapmyIndiaProviderDistanceAndTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"responseCode": 200,
			"results": {"distances": [40200], "durations": [4200]}
		}`))
	}))
	defer server.Close()

	provider := NewMapmyIndiaProvider(ProviderConfig{APIKey: "test-key", BaseURL: server.URL})

	result, err := provider.DistanceAndTime(context.Background(), testFrom, testTo)

	require.NoError(t, err)
	assert.Equal(t, 40.2, result.DistanceKm)
	assert.Equal(t, 70.0, result.DurationMin)
	assert.Equal(t, "mapmyindia", result.Provider)
}

func TestMapmyIndiaProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responseCode": 401}`))
	}))
	defer server.Close()

	provider := NewMapmyIndiaProvider(ProviderConfig{APIKey: "bad", BaseURL: server.URL})

	_, err := provider.DistanceAndTime(context.Background(), testFrom, testTo)

	require.Error(t, err)
}
