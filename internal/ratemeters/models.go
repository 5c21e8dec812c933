package ratemeters

import "time"

// RateMeter is an operator-configured pricing rule scoped to a service type,
// car category and, for outstation, a trip type.
//
// BaseKmPerDay, DriverCharges and NightCharges are stored for operator
// bookkeeping; the live fare formulas do not consult them.
type RateMeter struct {
	ID            int64     `json:"id" db:"id"`
	ServiceType   string    `json:"service_type" db:"service_type"`
	CarCategory   string    `json:"car_category" db:"car_category"`
	TripType      *string   `json:"trip_type,omitempty" db:"trip_type"`
	BaseFare      float64   `json:"base_fare" db:"base_fare"`
	PerKmRate     float64   `json:"per_km_rate" db:"per_km_rate"`
	PerMinuteRate float64   `json:"per_minute_rate" db:"per_minute_rate"`
	PerHourRate   float64   `json:"per_hour_rate" db:"per_hour_rate"`
	ExtraKmRate   float64   `json:"extra_km_rate" db:"extra_km_rate"`
	MinKm         float64   `json:"min_km" db:"min_km"`
	BaseKmPerDay  float64   `json:"base_km_per_day" db:"base_km_per_day"`
	DriverCharges float64   `json:"driver_charges" db:"driver_charges"`
	NightCharges  float64   `json:"night_charges" db:"night_charges"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreateRateMeterRequest is the request body for creating a rate meter
type CreateRateMeterRequest struct {
	ServiceType   string  `json:"service_type" binding:"required"`
	CarCategory   string  `json:"car_category" binding:"required"`
	TripType      *string `json:"trip_type,omitempty"`
	BaseFare      float64 `json:"base_fare" binding:"required,gte=0"`
	PerKmRate     float64 `json:"per_km_rate" binding:"gte=0"`
	PerMinuteRate float64 `json:"per_minute_rate" binding:"gte=0"`
	PerHourRate   float64 `json:"per_hour_rate" binding:"gte=0"`
	ExtraKmRate   float64 `json:"extra_km_rate" binding:"gte=0"`
	MinKm         float64 `json:"min_km" binding:"gte=0"`
	BaseKmPerDay  float64 `json:"base_km_per_day" binding:"gte=0"`
	DriverCharges float64 `json:"driver_charges" binding:"gte=0"`
	NightCharges  float64 `json:"night_charges" binding:"gte=0"`
	IsActive      bool    `json:"is_active"`
}

// UpdateRateMeterRequest is the request body for updating a rate meter
type UpdateRateMeterRequest = CreateRateMeterRequest

// ListFilter narrows a rate meter listing
type ListFilter struct {
	ServiceType     string
	IncludeInactive bool
	Limit           int
	Offset          int
}
