package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/garudacabs/cab-booking/internal/fares"
)

// Booking status lifecycle
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking is a confirmed trip request with its fare snapshot. The fare is
// computed once at creation and never recomputed; rate changes after booking
// do not affect it.
type Booking struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	ServiceType string    `json:"service_type" db:"service_type"`
	TripType    *string   `json:"trip_type,omitempty" db:"trip_type"`
	CarCategory string    `json:"car_category" db:"car_category"`
	CarOptionID *int64    `json:"car_option_id,omitempty" db:"car_option_id"`

	PickupAddress  string     `json:"pickup_address" db:"pickup_address"`
	DropoffAddress *string    `json:"dropoff_address,omitempty" db:"dropoff_address"`
	PickupLat      *float64   `json:"pickup_lat,omitempty" db:"pickup_lat"`
	PickupLng      *float64   `json:"pickup_lng,omitempty" db:"pickup_lng"`
	DropoffLat     *float64   `json:"dropoff_lat,omitempty" db:"dropoff_lat"`
	DropoffLng     *float64   `json:"dropoff_lng,omitempty" db:"dropoff_lng"`
	PickupAt       time.Time  `json:"pickup_at" db:"pickup_at"`
	ReturnAt       *time.Time `json:"return_at,omitempty" db:"return_at"`

	NumberOfHours int `json:"number_of_hours,omitempty" db:"number_of_hours"`
	NumberOfDays  int `json:"number_of_days,omitempty" db:"number_of_days"`

	// Fare snapshot
	Fare                 float64             `json:"fare" db:"fare"`
	DistanceKm           float64             `json:"distance_km" db:"distance_km"`
	EstimatedTimeMinutes float64             `json:"estimated_time_minutes" db:"estimated_time_minutes"`
	RuleKind             string              `json:"rule_kind" db:"rule_kind"`
	FareBreakdown        fares.FareBreakdown `json:"fare_breakdown" db:"fare_breakdown"`

	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBookingRequest is the request body for creating a booking
type CreateBookingRequest struct {
	ServiceType      string     `json:"service_type" binding:"required"`
	TripType         string     `json:"trip_type,omitempty"`
	CarOptionID      *int64     `json:"car_option_id,omitempty"`
	PickupAddress    string     `json:"pickup_address" binding:"required,min=5,max=500"`
	DropoffAddress   *string    `json:"dropoff_address,omitempty"`
	PickupLatitude   *float64   `json:"pickup_latitude,omitempty"`
	PickupLongitude  *float64   `json:"pickup_longitude,omitempty"`
	DropoffLatitude  *float64   `json:"dropoff_latitude,omitempty"`
	DropoffLongitude *float64   `json:"dropoff_longitude,omitempty"`
	PickupAt         time.Time  `json:"pickup_at" binding:"required"`
	ReturnAt         *time.Time `json:"return_at,omitempty"`
	NumberOfHours    int        `json:"number_of_hours,omitempty"`
	NumberOfDays     int        `json:"number_of_days,omitempty"`
}

// ListFilter narrows a booking listing
type ListFilter struct {
	UserID *uuid.UUID
	Status string
	Limit  int
	Offset int
}
