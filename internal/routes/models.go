package routes

import "fmt"

// Coordinate is a WGS84 point
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceTime is a resolved road distance and travel time for a route
type DistanceTime struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
	Provider    string  `json:"provider,omitempty"`
	CacheHit    bool    `json:"cache_hit,omitempty"`
}

// CacheKey builds the route cache key. Coordinates are rounded to 3 decimal
// places (roughly 100 m) so nearby pickups share a cache entry.
func CacheKey(from, to Coordinate) string {
	return fmt.Sprintf("routes:%.3f,%.3f:%.3f,%.3f",
		from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}
