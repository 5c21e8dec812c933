package routes

import (
	"context"
	"errors"
)

// ErrRouteUnavailable means no provider could resolve the route
var ErrRouteUnavailable = errors.New("route unavailable")

// Provider resolves road distance and travel time between two points
type Provider interface {
	DistanceAndTime(ctx context.Context, from, to Coordinate) (*DistanceTime, error)
	Name() string
}

// ProviderConfig holds configuration for a route provider
type ProviderConfig struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}
