package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/garudacabs/cab-booking/pkg/httpclient"
)

const mapmyIndiaBaseURL = "https://apis.mapmyindia.com/advancedmaps/v1"

// MapmyIndiaProvider resolves routes through the MapmyIndia distance API.
// Used as a fallback when Google is unavailable or over quota.
type MapmyIndiaProvider struct {
	apiKey string
	client *httpclient.Client
}

// NewMapmyIndiaProvider creates a new MapmyIndia route provider
func NewMapmyIndiaProvider(config ProviderConfig) *MapmyIndiaProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = mapmyIndiaBaseURL
	}
	timeout := config.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	return &MapmyIndiaProvider{
		apiKey: config.APIKey,
		client: httpclient.NewClient(baseURL, time.Duration(timeout)*time.Second),
	}
}

// Name returns the provider name
func (p *MapmyIndiaProvider) Name() string { return "mapmyindia" }

type mapmyIndiaDistanceResponse struct {
	ResponseCode int `json:"responseCode"`
	Results      struct {
		Distances []float64 `json:"distances"` // meters
		Durations []float64 `json:"durations"` // seconds
	} `json:"results"`
}

// DistanceAndTime resolves road distance and travel time for a route.
// MapmyIndia expects lng,lat ordering in the path.
func (p *MapmyIndiaProvider) DistanceAndTime(ctx context.Context, from, to Coordinate) (*DistanceTime, error) {
	path := fmt.Sprintf("/%s/distance_matrix/driving/%f,%f;%f,%f",
		p.apiKey, from.Longitude, from.Latitude, to.Longitude, to.Latitude)

	body, err := p.client.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("mapmyindia distance request failed: %w", err)
	}

	var resp mapmyIndiaDistanceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse mapmyindia response: %w", err)
	}

	if resp.ResponseCode != 200 {
		return nil, fmt.Errorf("mapmyindia error: response code %d", resp.ResponseCode)
	}
	if len(resp.Results.Distances) == 0 || len(resp.Results.Durations) == 0 {
		return nil, fmt.Errorf("mapmyindia returned no results")
	}

	return &DistanceTime{
		DistanceKm:  resp.Results.Distances[0] / 1000.0,
		DurationMin: resp.Results.Durations[0] / 60.0,
		Provider:    p.Name(),
	}, nil
}
