package fares

import (
	"strings"
	"time"
)

// ServiceType identifies the booking service a fare is priced for
type ServiceType string

const (
	ServiceLocal      ServiceType = "local"
	ServiceAirport    ServiceType = "airport"
	ServiceOutstation ServiceType = "outstation"
)

// TripType further splits outstation bookings
type TripType string

const (
	TripOneWay      TripType = "one_way"
	TripRoundTrip   TripType = "round_trip"
	TripMultipleWay TripType = "multiple_way"
)

// ParseServiceType normalizes a raw service type string
func ParseServiceType(raw string) (ServiceType, bool) {
	switch ServiceType(strings.ToLower(strings.TrimSpace(raw))) {
	case ServiceLocal:
		return ServiceLocal, true
	case ServiceAirport:
		return ServiceAirport, true
	case ServiceOutstation:
		return ServiceOutstation, true
	}
	return "", false
}

// ParseTripType normalizes a raw trip type string.
// "multiple_stops" is a legacy alias still sent by older clients.
func ParseTripType(raw string) (TripType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "one_way":
		return TripOneWay, true
	case "round_trip":
		return TripRoundTrip, true
	case "multiple_way", "multiple_stops":
		return TripMultipleWay, true
	}
	return "", false
}

// ServiceMultipliers scale legacy cab type fares by service type
var ServiceMultipliers = map[ServiceType]float64{
	ServiceLocal:      1.0,
	ServiceAirport:    1.2,
	ServiceOutstation: 1.5,
}

// TripMultipliers scale legacy outstation fares by trip type
var TripMultipliers = map[TripType]float64{
	TripOneWay:      1.0,
	TripRoundTrip:   1.8,
	TripMultipleWay: 2.2,
}

// Kempegowda International Airport pickup/drop anchor
const (
	AirportLatitude  = 13.1986
	AirportLongitude = 77.7066
)

// Round trips allow a fixed distance per day regardless of the actual route
const RoundTripKmPerDay = 300.0

// DefaultCarCategory is used when the requested car option cannot be resolved
const DefaultCarCategory = "Sedan"

// RuleKind discriminates the two pricing rule variants
type RuleKind string

const (
	RuleKindRateMeter RuleKind = "rate_meter"
	RuleKindLegacy    RuleKind = "legacy_cab_type"
)

// PricingRule is the resolved pricing rule a fare is computed from
type PricingRule interface {
	RuleKind() RuleKind
}

// RateMeterRule is an operator-configured rate meter row.
// Zero-valued rate fields mean the rate is not configured.
type RateMeterRule struct {
	ID            int64       `json:"id" db:"id"`
	ServiceType   ServiceType `json:"service_type" db:"service_type"`
	CarCategory   string      `json:"car_category" db:"car_category"`
	TripType      *TripType   `json:"trip_type,omitempty" db:"trip_type"`
	BaseFare      float64     `json:"base_fare" db:"base_fare"`
	PerKmRate     float64     `json:"per_km_rate" db:"per_km_rate"`
	PerMinuteRate float64     `json:"per_minute_rate" db:"per_minute_rate"`
	PerHourRate   float64     `json:"per_hour_rate" db:"per_hour_rate"`
	ExtraKmRate   float64     `json:"extra_km_rate" db:"extra_km_rate"`
	MinKm         float64     `json:"min_km" db:"min_km"`
	BaseKmPerDay  float64     `json:"base_km_per_day" db:"base_km_per_day"`
	DriverCharges float64     `json:"driver_charges" db:"driver_charges"`
	NightCharges  float64     `json:"night_charges" db:"night_charges"`
	IsActive      bool        `json:"is_active" db:"is_active"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// RuleKind implements PricingRule
func (r *RateMeterRule) RuleKind() RuleKind { return RuleKindRateMeter }

// LegacyCabTypeRule is the older, less granular pricing table kept for
// backward compatibility when no rate meter matches. Fares computed from it
// are scaled by the service and trip multiplier tables.
type LegacyCabTypeRule struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	BaseFare      float64   `json:"base_fare" db:"base_fare"`
	PerKmRate     float64   `json:"per_km_rate" db:"per_km_rate"`
	PerMinuteRate float64   `json:"per_minute_rate" db:"per_minute_rate"`
	PerHourRate   float64   `json:"per_hour_rate" db:"per_hour_rate"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// RuleKind implements PricingRule
func (r *LegacyCabTypeRule) RuleKind() RuleKind { return RuleKindLegacy }

// TripRequest contains all trip parameters a fare is computed from.
// DistanceKm and DurationMin are nil when the distance provider could not
// resolve them; each service type decides how to handle that.
type TripRequest struct {
	ServiceType   ServiceType
	TripType      TripType
	CarCategory   string
	DistanceKm    *float64
	DurationMin   *float64
	NumberOfHours int
	NumberOfDays  int
}

// FareBreakdown itemizes the components of a computed fare.
// Values are reported as computed, without rounding.
type FareBreakdown struct {
	BaseFare          float64 `json:"base_fare"`
	DistanceCharge    float64 `json:"distance_charge"`
	TimeCharge        float64 `json:"time_charge"`
	ServiceMultiplier float64 `json:"service_multiplier"`
}

// FareResult is the outcome of a single fare computation
type FareResult struct {
	Fare                 float64       `json:"fare"`
	DistanceKm           float64       `json:"distance_km"`
	EstimatedTimeMinutes float64       `json:"estimated_time_minutes"`
	RuleKind             RuleKind      `json:"rule_kind"`
	Breakdown            FareBreakdown `json:"breakdown"`
}

// EstimateRequest is the request body for a fare estimate
type EstimateRequest struct {
	ServiceType      string   `json:"service_type" binding:"required"`
	TripType         string   `json:"trip_type,omitempty"`
	CarOptionID      *int64   `json:"car_option_id,omitempty"`
	CarCategory      string   `json:"car_category,omitempty"`
	PickupLatitude   *float64 `json:"pickup_latitude,omitempty"`
	PickupLongitude  *float64 `json:"pickup_longitude,omitempty"`
	DropoffLatitude  *float64 `json:"dropoff_latitude,omitempty"`
	DropoffLongitude *float64 `json:"dropoff_longitude,omitempty"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
	DurationMin      *float64 `json:"duration_min,omitempty"`
	NumberOfHours    int      `json:"number_of_hours,omitempty"`
	NumberOfDays     int      `json:"number_of_days,omitempty"`
}

// EstimateResponse is the response body for a fare estimate
type EstimateResponse struct {
	ServiceType          ServiceType   `json:"service_type"`
	TripType             TripType      `json:"trip_type,omitempty"`
	CarCategory          string        `json:"car_category"`
	Fare                 float64       `json:"fare"`
	DistanceKm           float64       `json:"distance_km"`
	EstimatedTimeMinutes float64       `json:"estimated_time_minutes"`
	RuleKind             RuleKind      `json:"rule_kind"`
	Breakdown            FareBreakdown `json:"breakdown"`
}
