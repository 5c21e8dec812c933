package routes

import (
	"context"
	"math"

	"github.com/garudacabs/cab-booking/pkg/geo"
)

// roadWindingFactor scales great-circle distance up to an approximate road
// distance for Indian city road networks.
const roadWindingFactor = 1.3

// HaversineProvider estimates the route from straight-line distance. It never
// fails, so it belongs last in the provider chain.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider {
	return &HaversineProvider{}
}

func (h *HaversineProvider) Name() string { return "haversine" }

func (h *HaversineProvider) DistanceAndTime(_ context.Context, from, to Coordinate) (*DistanceTime, error) {
	distanceKm := geo.Haversine(from.Latitude, from.Longitude, to.Latitude, to.Longitude) * roadWindingFactor
	distanceKm = math.Round(distanceKm*100) / 100

	return &DistanceTime{
		DistanceKm:  distanceKm,
		DurationMin: geo.EstimateDuration(distanceKm),
		Provider:    h.Name(),
	}, nil
}
