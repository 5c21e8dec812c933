package fares

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/garudacabs/cab-booking/pkg/logger"
	"github.com/garudacabs/cab-booking/pkg/validation"
)

// Service orchestrates a fare estimate: normalizes the request, resolves the
// car category and route, selects a pricing rule and computes the fare.
type Service struct {
	repo       RepositoryInterface
	resolver   *Resolver
	calculator *Calculator
	routes     RouteProvider
	carOptions CarCategoryProvider
}

// NewService creates a new fares service. routes and carOptions may be nil;
// the service then degrades per the service type rules (airport estimates
// fail without a route provider, others price distance as 0).
func NewService(repo RepositoryInterface, routes RouteProvider, carOptions CarCategoryProvider) *Service {
	return &Service{
		repo:       repo,
		resolver:   NewResolver(repo),
		calculator: NewCalculator(),
		routes:     routes,
		carOptions: carOptions,
	}
}

// Estimate computes a fare for the raw estimate request
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (*EstimateResponse, error) {
	serviceType, ok := ParseServiceType(req.ServiceType)
	if !ok {
		return nil, &ValidationError{Field: "service_type", Message: "must be local, airport or outstation"}
	}

	if req.DistanceKm != nil {
		if err := validation.ValidateDistance(*req.DistanceKm); err != nil {
			return nil, &ValidationError{Field: "distance_km", Message: err.Error()}
		}
	}

	var tripType TripType
	if serviceType == ServiceOutstation {
		tripType, ok = ParseTripType(req.TripType)
		if !ok {
			return nil, &ValidationError{Field: "trip_type", Message: "is required for outstation bookings"}
		}
	}

	carCategory := s.resolveCarCategory(ctx, req)

	trip := TripRequest{
		ServiceType:   serviceType,
		TripType:      tripType,
		CarCategory:   carCategory,
		DistanceKm:    req.DistanceKm,
		DurationMin:   req.DurationMin,
		NumberOfHours: req.NumberOfHours,
		NumberOfDays:  req.NumberOfDays,
	}
	s.resolveDistance(ctx, &trip, req)

	opts := ResolveOptions{
		ServiceType: serviceType,
		CarCategory: carCategory,
	}
	if serviceType == ServiceOutstation {
		opts.TripType = &tripType
	}

	rule, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		fareEstimateFailuresTotal.WithLabelValues(string(serviceType), "resolve").Inc()
		return nil, err
	}

	result, err := s.calculator.Calculate(trip, rule)
	if err != nil {
		fareEstimateFailuresTotal.WithLabelValues(string(serviceType), failureReason(err)).Inc()
		return nil, err
	}

	fareEstimatesTotal.WithLabelValues(string(serviceType), string(result.RuleKind)).Inc()
	logger.InfoContext(ctx, "fare estimated",
		zap.String("service_type", string(serviceType)),
		zap.String("car_category", carCategory),
		zap.String("rule_kind", string(result.RuleKind)),
		zap.Float64("fare", result.Fare),
	)

	return &EstimateResponse{
		ServiceType:          serviceType,
		TripType:             tripType,
		CarCategory:          carCategory,
		Fare:                 result.Fare,
		DistanceKm:           result.DistanceKm,
		EstimatedTimeMinutes: result.EstimatedTimeMinutes,
		RuleKind:             result.RuleKind,
		Breakdown:            result.Breakdown,
	}, nil
}

// ResolveRate returns the pricing rule that would price the given trip,
// without computing a fare
func (s *Service) ResolveRate(ctx context.Context, serviceType ServiceType, carCategory string, tripType *TripType) (PricingRule, error) {
	if carCategory == "" {
		carCategory = DefaultCarCategory
	}
	opts := ResolveOptions{ServiceType: serviceType, CarCategory: carCategory}
	if serviceType == ServiceOutstation {
		opts.TripType = tripType
	}
	return s.resolver.Resolve(ctx, opts)
}

// resolveCarCategory maps the requested car option to its category. Any
// failure falls back to the default category so a stale car option id never
// blocks an estimate.
func (s *Service) resolveCarCategory(ctx context.Context, req EstimateRequest) string {
	if req.CarCategory != "" {
		return req.CarCategory
	}
	if req.CarOptionID != nil && s.carOptions != nil {
		category, err := s.carOptions.CategoryForOption(ctx, *req.CarOptionID)
		if err == nil && category != "" {
			return category
		}
		logger.WarnContext(ctx, "could not resolve car option category, defaulting",
			zap.Int64("car_option_id", *req.CarOptionID),
			zap.String("default", DefaultCarCategory),
			zap.Error(err),
		)
	}
	return DefaultCarCategory
}

// resolveDistance fills in distance and duration from the route provider
// when the caller did not supply them. Airport trips are anchored to the
// airport coordinate first: if only one end of the trip is given, the other
// end is the airport.
func (s *Service) resolveDistance(ctx context.Context, trip *TripRequest, req EstimateRequest) {
	if trip.DistanceKm != nil && trip.DurationMin != nil {
		return
	}
	if trip.ServiceType == ServiceLocal {
		// hourly rentals are never distance-priced
		return
	}

	from, to, ok := tripEndpoints(trip.ServiceType, req)
	if !ok || s.routes == nil {
		return
	}

	distanceKm, durationMin, err := s.routes.DistanceAndTime(ctx, from, to)
	if err != nil {
		logger.WarnContext(ctx, "route resolution failed",
			zap.String("service_type", string(trip.ServiceType)),
			zap.Error(err),
		)
		return
	}
	if trip.DistanceKm == nil {
		trip.DistanceKm = &distanceKm
	}
	if trip.DurationMin == nil {
		trip.DurationMin = &durationMin
	}
}

// tripEndpoints returns the coordinate pair to route between. For airport
// trips a missing endpoint is set to the airport anchor.
func tripEndpoints(serviceType ServiceType, req EstimateRequest) (Coordinate, Coordinate, bool) {
	hasPickup := req.PickupLatitude != nil && req.PickupLongitude != nil
	hasDropoff := req.DropoffLatitude != nil && req.DropoffLongitude != nil

	airport := Coordinate{Latitude: AirportLatitude, Longitude: AirportLongitude}

	switch {
	case hasPickup && hasDropoff:
		return Coordinate{Latitude: *req.PickupLatitude, Longitude: *req.PickupLongitude},
			Coordinate{Latitude: *req.DropoffLatitude, Longitude: *req.DropoffLongitude}, true
	case serviceType == ServiceAirport && hasPickup:
		return Coordinate{Latitude: *req.PickupLatitude, Longitude: *req.PickupLongitude}, airport, true
	case serviceType == ServiceAirport && hasDropoff:
		return airport, Coordinate{Latitude: *req.DropoffLatitude, Longitude: *req.DropoffLongitude}, true
	}
	return Coordinate{}, Coordinate{}, false
}

func failureReason(err error) string {
	var configErr *PricingConfigError
	var validationErr *ValidationError
	switch {
	case errors.As(err, &configErr):
		return "pricing_config"
	case errors.Is(err, ErrDistanceUnavailable):
		return "distance_unavailable"
	case errors.As(err, &validationErr):
		return "validation"
	default:
		return "internal"
	}
}
