package fares

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestCalculateLocal(t *testing.T) {
	calc := NewCalculator()

	t.Run("rate meter hourly formula", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType:   ServiceLocal,
			NumberOfHours: 4,
		}, &RateMeterRule{BaseFare: 100, PerHourRate: 50})

		require.NoError(t, err)
		assert.Equal(t, 300.00, result.Fare)
		assert.Equal(t, 0.0, result.DistanceKm)
		assert.Equal(t, 240.0, result.EstimatedTimeMinutes)
		assert.Equal(t, 200.0, result.Breakdown.TimeCharge)
		assert.Equal(t, RuleKindRateMeter, result.RuleKind)
	})

	t.Run("supplied distance is discarded", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType:   ServiceLocal,
			NumberOfHours: 2,
			DistanceKm:    floatPtr(120),
		}, &RateMeterRule{BaseFare: 100, PerHourRate: 50, PerKmRate: 10})

		require.NoError(t, err)
		assert.Equal(t, 0.0, result.DistanceKm)
		assert.Equal(t, 0.0, result.Breakdown.DistanceCharge)
		assert.Equal(t, 200.00, result.Fare)
	})

	t.Run("rate meter missing per hour rate fails", func(t *testing.T) {
		_, err := calc.Calculate(TripRequest{
			ServiceType:   ServiceLocal,
			NumberOfHours: 4,
		}, &RateMeterRule{BaseFare: 100})

		var configErr *PricingConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "per_hour_rate", configErr.Field)
	})

	t.Run("legacy rule prefers per hour rate", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType:   ServiceLocal,
			NumberOfHours: 3,
		}, &LegacyCabTypeRule{BaseFare: 50, PerHourRate: 100, PerMinuteRate: 5})

		require.NoError(t, err)
		assert.Equal(t, 350.00, result.Fare)
	})

	t.Run("legacy rule derives hourly rate from per minute rate", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType:   ServiceLocal,
			NumberOfHours: 2,
		}, &LegacyCabTypeRule{BaseFare: 100, PerMinuteRate: 2})

		require.NoError(t, err)
		// 2 hours at 2/minute is 240, plus base, local multiplier is 1.0
		assert.Equal(t, 340.00, result.Fare)
		assert.Equal(t, 240.0, result.Breakdown.TimeCharge)
	})

	t.Run("legacy rule without any time rate fails", func(t *testing.T) {
		_, err := calc.Calculate(TripRequest{
			ServiceType:   ServiceLocal,
			NumberOfHours: 2,
		}, &LegacyCabTypeRule{BaseFare: 100})

		var configErr *PricingConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, RuleKindLegacy, configErr.Kind)
	})

	t.Run("hours below one is rejected", func(t *testing.T) {
		_, err := calc.Calculate(TripRequest{
			ServiceType: ServiceLocal,
		}, &RateMeterRule{BaseFare: 100, PerHourRate: 50})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "number_of_hours", validationErr.Field)
	})
}

func TestCalculateOutstationRoundTrip(t *testing.T) {
	calc := NewCalculator()

	t.Run("distance is computed from days", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType:  ServiceOutstation,
			TripType:     TripRoundTrip,
			NumberOfDays: 2,
		}, &RateMeterRule{BaseFare: 500, PerKmRate: 10})

		require.NoError(t, err)
		assert.Equal(t, 600.0, result.DistanceKm)
		assert.Equal(t, 6500.00, result.Fare)
		assert.Equal(t, 6000.0, result.Breakdown.DistanceCharge)
		assert.Equal(t, 0.0, result.Breakdown.TimeCharge)
	})

	t.Run("supplied distance is overridden", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType:  ServiceOutstation,
			TripType:     TripRoundTrip,
			NumberOfDays: 1,
			DistanceKm:   floatPtr(999),
		}, &RateMeterRule{BaseFare: 500, PerKmRate: 10})

		require.NoError(t, err)
		assert.Equal(t, 300.0, result.DistanceKm)
		assert.Equal(t, 3500.00, result.Fare)
	})

	t.Run("days defaults to one", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType: ServiceOutstation,
			TripType:    TripRoundTrip,
		}, &RateMeterRule{BaseFare: 500, PerKmRate: 10})

		require.NoError(t, err)
		assert.Equal(t, 300.0, result.DistanceKm)
	})

	t.Run("legacy rule ignores distance", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType:  ServiceOutstation,
			TripType:     TripRoundTrip,
			NumberOfDays: 2,
			DistanceKm:   floatPtr(500),
		}, &LegacyCabTypeRule{BaseFare: 1000, PerKmRate: 10})

		require.NoError(t, err)
		// base * 1.5 (outstation) * 1.8 (round trip)
		assert.Equal(t, 2700.00, result.Fare)
		assert.Equal(t, 0.0, result.Breakdown.DistanceCharge)
		assert.InDelta(t, 2.7, result.Breakdown.ServiceMultiplier, 1e-9)
	})
}

func TestCalculateOutstationOneWay(t *testing.T) {
	calc := NewCalculator()

	t.Run("rate meter uses supplied distance", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType: ServiceOutstation,
			TripType:    TripOneWay,
			DistanceKm:  floatPtr(250),
		}, &RateMeterRule{BaseFare: 400, PerKmRate: 12})

		require.NoError(t, err)
		assert.Equal(t, 3400.00, result.Fare)
		assert.Equal(t, 250.0, result.DistanceKm)
	})

	t.Run("missing distance degrades to zero", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType: ServiceOutstation,
			TripType:    TripOneWay,
		}, &RateMeterRule{BaseFare: 400, PerKmRate: 12})

		require.NoError(t, err)
		assert.Equal(t, 400.00, result.Fare)
		assert.Equal(t, 0.0, result.DistanceKm)
	})

	t.Run("legacy one way applies service multiplier", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType: ServiceOutstation,
			TripType:    TripOneWay,
			DistanceKm:  floatPtr(50),
			DurationMin: floatPtr(60),
		}, &LegacyCabTypeRule{BaseFare: 100, PerKmRate: 10, PerMinuteRate: 1})

		require.NoError(t, err)
		// (100 + 500 + 60) * 1.5 * 1.0
		assert.Equal(t, 990.00, result.Fare)
	})

	t.Run("legacy multiple way applies trip multiplier", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType: ServiceOutstation,
			TripType:    TripMultipleWay,
			DistanceKm:  floatPtr(100),
		}, &LegacyCabTypeRule{BaseFare: 100, PerKmRate: 10})

		require.NoError(t, err)
		// (100 + 1000) * 1.5 * 2.2
		assert.Equal(t, 3630.00, result.Fare)
	})

	t.Run("missing trip type is rejected", func(t *testing.T) {
		_, err := calc.Calculate(TripRequest{
			ServiceType: ServiceOutstation,
		}, &RateMeterRule{BaseFare: 400, PerKmRate: 12})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "trip_type", validationErr.Field)
	})
}

func TestCalculateAirport(t *testing.T) {
	calc := NewCalculator()

	t.Run("rate meter distance and time formula", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType: ServiceAirport,
			DistanceKm:  floatPtr(40),
			DurationMin: floatPtr(60),
		}, &RateMeterRule{BaseFare: 200, PerKmRate: 15, PerMinuteRate: 2})

		require.NoError(t, err)
		assert.Equal(t, 920.00, result.Fare)
		assert.Equal(t, 600.0, result.Breakdown.DistanceCharge)
		assert.Equal(t, 120.0, result.Breakdown.TimeCharge)
	})

	t.Run("missing per minute rate charges no time", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType: ServiceAirport,
			DistanceKm:  floatPtr(40),
			DurationMin: floatPtr(60),
		}, &RateMeterRule{BaseFare: 200, PerKmRate: 15})

		require.NoError(t, err)
		assert.Equal(t, 800.00, result.Fare)
		assert.Equal(t, 0.0, result.Breakdown.TimeCharge)
	})

	t.Run("legacy rule applies airport multiplier", func(t *testing.T) {
		result, err := calc.Calculate(TripRequest{
			ServiceType: ServiceAirport,
			DistanceKm:  floatPtr(40),
			DurationMin: floatPtr(0),
		}, &LegacyCabTypeRule{BaseFare: 100, PerKmRate: 10})

		require.NoError(t, err)
		// (100 + 400) * 1.2
		assert.Equal(t, 600.00, result.Fare)
		assert.Equal(t, 1.2, result.Breakdown.ServiceMultiplier)
	})

	t.Run("missing distance fails instead of pricing zero", func(t *testing.T) {
		_, err := calc.Calculate(TripRequest{
			ServiceType: ServiceAirport,
			DurationMin: floatPtr(60),
		}, &RateMeterRule{BaseFare: 200, PerKmRate: 15})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDistanceUnavailable))
	})

	t.Run("missing duration fails the same way", func(t *testing.T) {
		_, err := calc.Calculate(TripRequest{
			ServiceType: ServiceAirport,
			DistanceKm:  floatPtr(40),
		}, &RateMeterRule{BaseFare: 200, PerKmRate: 15})

		assert.True(t, errors.Is(err, ErrDistanceUnavailable))
	})
}

func TestCalculateRounding(t *testing.T) {
	calc := NewCalculator()

	result, err := calc.Calculate(TripRequest{
		ServiceType:   ServiceLocal,
		NumberOfHours: 1,
	}, &RateMeterRule{BaseFare: 100.12345, PerHourRate: 50.005})

	require.NoError(t, err)
	// fare is rounded to 2 decimals, breakdown keeps the raw values
	assert.Equal(t, 150.13, result.Fare)
	assert.Equal(t, 100.12345, result.Breakdown.BaseFare)
	assert.Equal(t, 50.005, result.Breakdown.TimeCharge)
}

func TestCalculateIdempotence(t *testing.T) {
	calc := NewCalculator()
	req := TripRequest{
		ServiceType: ServiceAirport,
		DistanceKm:  floatPtr(37.3),
		DurationMin: floatPtr(52),
	}
	rule := &RateMeterRule{BaseFare: 150, PerKmRate: 14.5, PerMinuteRate: 1.5}

	first, err := calc.Calculate(req, rule)
	require.NoError(t, err)
	second, err := calc.Calculate(req, rule)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateUnknownServiceType(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Calculate(TripRequest{ServiceType: "corporate"}, &RateMeterRule{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "service_type", validationErr.Field)
}
