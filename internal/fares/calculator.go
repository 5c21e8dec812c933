package fares

import (
	"math"
)

// Calculator computes a fare from a trip request and a resolved pricing
// rule. Pure computation, no I/O: distance and duration are resolved by the
// caller before this runs.
type Calculator struct{}

// NewCalculator creates a new fare calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate computes the fare for the trip under the given rule.
// Only the final fare is rounded; breakdown fields are reported as computed.
func (c *Calculator) Calculate(req TripRequest, rule PricingRule) (*FareResult, error) {
	switch req.ServiceType {
	case ServiceLocal:
		return c.calculateLocal(req, rule)
	case ServiceAirport:
		return c.calculateAirport(req, rule)
	case ServiceOutstation:
		return c.calculateOutstation(req, rule)
	default:
		return nil, &ValidationError{Field: "service_type", Message: "must be local, airport or outstation"}
	}
}

// calculateLocal prices hourly rentals. Local bookings are never
// distance-priced, so any supplied distance is discarded.
func (c *Calculator) calculateLocal(req TripRequest, rule PricingRule) (*FareResult, error) {
	if req.NumberOfHours < 1 {
		return nil, &ValidationError{Field: "number_of_hours", Message: "must be at least 1"}
	}
	hours := float64(req.NumberOfHours)

	switch r := rule.(type) {
	case *RateMeterRule:
		if r.PerHourRate <= 0 {
			// A zero hourly rate would silently price the rental at the base
			// fare alone. Block the booking so the operator fixes the rule.
			return nil, &PricingConfigError{Kind: RuleKindRateMeter, Field: "per_hour_rate"}
		}
		timeCharge := hours * r.PerHourRate
		fare := r.BaseFare + timeCharge
		return buildResult(fare, 0, hours*60, RuleKindRateMeter, FareBreakdown{
			BaseFare:          r.BaseFare,
			TimeCharge:        timeCharge,
			ServiceMultiplier: 1.0,
		}), nil

	case *LegacyCabTypeRule:
		var timeCharge float64
		switch {
		case r.PerHourRate > 0:
			timeCharge = hours * r.PerHourRate
		case r.PerMinuteRate > 0:
			timeCharge = r.PerMinuteRate * hours * 60
		default:
			return nil, &PricingConfigError{Kind: RuleKindLegacy, Field: "per_hour_rate"}
		}
		multiplier := ServiceMultipliers[ServiceLocal]
		fare := (r.BaseFare + timeCharge) * multiplier
		return buildResult(fare, 0, hours*60, RuleKindLegacy, FareBreakdown{
			BaseFare:          r.BaseFare,
			TimeCharge:        timeCharge,
			ServiceMultiplier: multiplier,
		}), nil
	}

	return nil, &ValidationError{Field: "rule", Message: "is of an unknown kind"}
}

// calculateAirport prices airport transfers. Airport fares are fundamentally
// distance-based, so this is the one branch that fails rather than pricing a
// zero-distance trip.
func (c *Calculator) calculateAirport(req TripRequest, rule PricingRule) (*FareResult, error) {
	if req.DistanceKm == nil || req.DurationMin == nil {
		return nil, ErrDistanceUnavailable
	}
	distanceKm := *req.DistanceKm
	durationMin := *req.DurationMin

	switch r := rule.(type) {
	case *RateMeterRule:
		distanceCharge := distanceKm * r.PerKmRate
		timeCharge := durationMin * r.PerMinuteRate
		fare := r.BaseFare + distanceCharge + timeCharge
		return buildResult(fare, distanceKm, durationMin, RuleKindRateMeter, FareBreakdown{
			BaseFare:          r.BaseFare,
			DistanceCharge:    distanceCharge,
			TimeCharge:        timeCharge,
			ServiceMultiplier: 1.0,
		}), nil

	case *LegacyCabTypeRule:
		distanceCharge := distanceKm * r.PerKmRate
		timeCharge := durationMin * r.PerMinuteRate
		multiplier := ServiceMultipliers[ServiceAirport]
		fare := (r.BaseFare + distanceCharge + timeCharge) * multiplier
		return buildResult(fare, distanceKm, durationMin, RuleKindLegacy, FareBreakdown{
			BaseFare:          r.BaseFare,
			DistanceCharge:    distanceCharge,
			TimeCharge:        timeCharge,
			ServiceMultiplier: multiplier,
		}), nil
	}

	return nil, &ValidationError{Field: "rule", Message: "is of an unknown kind"}
}

// calculateOutstation prices intercity trips, split by trip type
func (c *Calculator) calculateOutstation(req TripRequest, rule PricingRule) (*FareResult, error) {
	switch req.TripType {
	case TripRoundTrip:
		return c.calculateRoundTrip(req, rule)
	case TripOneWay, TripMultipleWay:
		return c.calculateOutstationOneWay(req, rule)
	default:
		return nil, &ValidationError{Field: "trip_type", Message: "is required for outstation bookings"}
	}
}

// calculateRoundTrip prices round trips on a fixed distance allowance per
// day, overriding any externally supplied distance.
func (c *Calculator) calculateRoundTrip(req TripRequest, rule PricingRule) (*FareResult, error) {
	days := req.NumberOfDays
	if days <= 0 {
		days = 1
	}
	distanceKm := RoundTripKmPerDay * float64(days)

	switch r := rule.(type) {
	case *RateMeterRule:
		distanceCharge := distanceKm * r.PerKmRate
		fare := r.BaseFare + distanceCharge
		return buildResult(fare, distanceKm, 0, RuleKindRateMeter, FareBreakdown{
			BaseFare:          r.BaseFare,
			DistanceCharge:    distanceCharge,
			ServiceMultiplier: 1.0,
		}), nil

	case *LegacyCabTypeRule:
		// The legacy table predates per-day distance allowances; its round
		// trip price is the multiplier-scaled base fare, distance ignored.
		multiplier := ServiceMultipliers[ServiceOutstation] * TripMultipliers[TripRoundTrip]
		fare := r.BaseFare * multiplier
		return buildResult(fare, distanceKm, 0, RuleKindLegacy, FareBreakdown{
			BaseFare:          r.BaseFare,
			ServiceMultiplier: multiplier,
		}), nil
	}

	return nil, &ValidationError{Field: "rule", Message: "is of an unknown kind"}
}

// calculateOutstationOneWay prices one-way and multi-stop outstation trips.
// A missing distance degrades to 0 rather than blocking the booking.
func (c *Calculator) calculateOutstationOneWay(req TripRequest, rule PricingRule) (*FareResult, error) {
	var distanceKm float64
	if req.DistanceKm != nil {
		distanceKm = *req.DistanceKm
	}
	var durationMin float64
	if req.DurationMin != nil {
		durationMin = *req.DurationMin
	}

	switch r := rule.(type) {
	case *RateMeterRule:
		distanceCharge := distanceKm * r.PerKmRate
		fare := r.BaseFare + distanceCharge
		return buildResult(fare, distanceKm, durationMin, RuleKindRateMeter, FareBreakdown{
			BaseFare:          r.BaseFare,
			DistanceCharge:    distanceCharge,
			ServiceMultiplier: 1.0,
		}), nil

	case *LegacyCabTypeRule:
		distanceCharge := distanceKm * r.PerKmRate
		timeCharge := durationMin * r.PerMinuteRate
		multiplier := ServiceMultipliers[ServiceOutstation] * TripMultipliers[req.TripType]
		fare := (r.BaseFare + distanceCharge + timeCharge) * multiplier
		return buildResult(fare, distanceKm, durationMin, RuleKindLegacy, FareBreakdown{
			BaseFare:          r.BaseFare,
			DistanceCharge:    distanceCharge,
			TimeCharge:        timeCharge,
			ServiceMultiplier: multiplier,
		}), nil
	}

	return nil, &ValidationError{Field: "rule", Message: "is of an unknown kind"}
}

func buildResult(fare, distanceKm, durationMin float64, kind RuleKind, breakdown FareBreakdown) *FareResult {
	return &FareResult{
		Fare:                 round2(fare),
		DistanceKm:           distanceKm,
		EstimatedTimeMinutes: durationMin,
		RuleKind:             kind,
		Breakdown:            breakdown,
	}
}

// round2 rounds to 2 decimal places, half away from zero
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
