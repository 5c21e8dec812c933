package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/garudacabs/cab-booking/pkg/httpclient"
)

const (
	googleMapsBaseURL            = "https://maps.googleapis.com/maps/api"
	googleDistanceMatrixEndpoint = "/distancematrix/json"
)

// GoogleProvider resolves routes through the Google Distance Matrix API
type GoogleProvider struct {
	apiKey string
	client *httpclient.Client
}

// NewGoogleProvider creates a new Google route provider
func NewGoogleProvider(config ProviderConfig) *GoogleProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = googleMapsBaseURL
	}
	timeout := config.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	return &GoogleProvider{
		apiKey: config.APIKey,
		client: httpclient.NewClient(baseURL, time.Duration(timeout)*time.Second),
	}
}

// Name returns the provider name
func (g *GoogleProvider) Name() string { return "google" }

type googleDistanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
	ErrorMessage string `json:"error_message"`
}

// DistanceAndTime resolves road distance and travel time for a route
func (g *GoogleProvider) DistanceAndTime(ctx context.Context, from, to Coordinate) (*DistanceTime, error) {
	params := url.Values{}
	params.Set("origins", formatCoordinate(from))
	params.Set("destinations", formatCoordinate(to))
	params.Set("mode", "driving")
	params.Set("units", "metric")
	params.Set("key", g.apiKey)

	body, err := g.client.Get(ctx, googleDistanceMatrixEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("google distance matrix request failed: %w", err)
	}

	var resp googleDistanceMatrixResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse distance matrix response: %w", err)
	}

	if resp.Status != "OK" {
		return nil, fmt.Errorf("google distance matrix error: %s %s", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("google distance matrix returned no elements")
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil, fmt.Errorf("google distance matrix element error: %s", element.Status)
	}

	return &DistanceTime{
		DistanceKm:  float64(element.Distance.Value) / 1000.0,
		DurationMin: float64(element.Duration.Value) / 60.0,
		Provider:    g.Name(),
	}, nil
}

func formatCoordinate(c Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
}
