package fares

import (
	"context"
)

// RepositoryInterface defines the rule store lookups the resolver needs.
// Lookups that match nothing return an error wrapping common.ErrNotFound.
type RepositoryInterface interface {
	// Rate meters
	GetRateMeter(ctx context.Context, serviceType ServiceType, carCategory string, tripType *TripType) (*RateMeterRule, error)
	GetGenericRateMeter(ctx context.Context, serviceType ServiceType) (*RateMeterRule, error)

	// Legacy cab types
	GetCabTypeByID(ctx context.Context, id int64) (*LegacyCabTypeRule, error)
	GetCabTypeByName(ctx context.Context, name string) (*LegacyCabTypeRule, error)
	GetFirstActiveCabType(ctx context.Context) (*LegacyCabTypeRule, error)
}

// CarCategoryProvider resolves a car option to its coarse vehicle category
type CarCategoryProvider interface {
	CategoryForOption(ctx context.Context, carOptionID int64) (string, error)
}

// Coordinate is a WGS84 point
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RouteProvider resolves road distance and travel time between two points
type RouteProvider interface {
	DistanceAndTime(ctx context.Context, from, to Coordinate) (distanceKm, durationMin float64, err error)
}
