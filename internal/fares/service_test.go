package fares

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRouteProvider struct {
	mock.Mock
}

func (m *MockRouteProvider) DistanceAndTime(ctx context.Context, from, to Coordinate) (float64, float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

type MockCarOptions struct {
	mock.Mock
}

func (m *MockCarOptions) CategoryForOption(ctx context.Context, carOptionID int64) (string, error) {
	args := m.Called(ctx, carOptionID)
	return args.String(0), args.Error(1)
}

func int64Ptr(v int64) *int64 { return &v }

func TestEstimateLocal(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, nil)

	repo.On("GetRateMeter", mock.Anything, ServiceLocal, "Sedan", (*TripType)(nil)).
		Return(&RateMeterRule{BaseFare: 100, PerHourRate: 50}, nil)

	resp, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType:   "local",
		NumberOfHours: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, 300.00, resp.Fare)
	assert.Equal(t, "Sedan", resp.CarCategory)
	assert.Equal(t, RuleKindRateMeter, resp.RuleKind)
}

func TestEstimateDefaultsCarCategoryOnLookupFailure(t *testing.T) {
	repo := new(MockRepository)
	carOptions := new(MockCarOptions)
	svc := NewService(repo, nil, carOptions)

	carOptions.On("CategoryForOption", mock.Anything, int64(42)).Return("", errors.New("gone"))
	repo.On("GetRateMeter", mock.Anything, ServiceLocal, "Sedan", (*TripType)(nil)).
		Return(&RateMeterRule{BaseFare: 100, PerHourRate: 50}, nil)

	resp, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType:   "local",
		CarOptionID:   int64Ptr(42),
		NumberOfHours: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "Sedan", resp.CarCategory)
}

func TestEstimateUsesCarOptionCategory(t *testing.T) {
	repo := new(MockRepository)
	carOptions := new(MockCarOptions)
	svc := NewService(repo, nil, carOptions)

	carOptions.On("CategoryForOption", mock.Anything, int64(7)).Return("SUV", nil)
	repo.On("GetRateMeter", mock.Anything, ServiceLocal, "SUV", (*TripType)(nil)).
		Return(&RateMeterRule{BaseFare: 150, PerHourRate: 60}, nil)

	resp, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType:   "local",
		CarOptionID:   int64Ptr(7),
		NumberOfHours: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, "SUV", resp.CarCategory)
	assert.Equal(t, 270.00, resp.Fare)
}

func TestEstimateAirportAnchorsMissingEndpoint(t *testing.T) {
	repo := new(MockRepository)
	routes := new(MockRouteProvider)
	svc := NewService(repo, routes, nil)

	pickup := Coordinate{Latitude: 12.9716, Longitude: 77.5946}
	airport := Coordinate{Latitude: AirportLatitude, Longitude: AirportLongitude}

	routes.On("DistanceAndTime", mock.Anything, pickup, airport).Return(38.5, 65.0, nil)
	repo.On("GetRateMeter", mock.Anything, ServiceAirport, "Sedan", (*TripType)(nil)).
		Return(&RateMeterRule{BaseFare: 200, PerKmRate: 10, PerMinuteRate: 1}, nil)

	resp, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType:     "airport",
		PickupLatitude:  &pickup.Latitude,
		PickupLongitude: &pickup.Longitude,
	})

	require.NoError(t, err)
	assert.Equal(t, 38.5, resp.DistanceKm)
	assert.Equal(t, 650.00, resp.Fare)
	routes.AssertExpectations(t)
}

func TestEstimateAirportFailsWithoutRoute(t *testing.T) {
	repo := new(MockRepository)
	routes := new(MockRouteProvider)
	svc := NewService(repo, routes, nil)

	pickup := Coordinate{Latitude: 12.9716, Longitude: 77.5946}
	routes.On("DistanceAndTime", mock.Anything, mock.Anything, mock.Anything).
		Return(0.0, 0.0, errors.New("upstream timeout"))
	repo.On("GetRateMeter", mock.Anything, ServiceAirport, "Sedan", (*TripType)(nil)).
		Return(&RateMeterRule{BaseFare: 200, PerKmRate: 10}, nil)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType:     "airport",
		PickupLatitude:  &pickup.Latitude,
		PickupLongitude: &pickup.Longitude,
	})

	assert.True(t, errors.Is(err, ErrDistanceUnavailable))
}

func TestEstimateOutstationToleratesMissingRoute(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, nil)

	tripType := TripOneWay
	repo.On("GetRateMeter", mock.Anything, ServiceOutstation, "Sedan", &tripType).
		Return(&RateMeterRule{BaseFare: 400, PerKmRate: 12}, nil)

	resp, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType: "outstation",
		TripType:    "one_way",
	})

	require.NoError(t, err)
	assert.Equal(t, 400.00, resp.Fare)
	assert.Equal(t, 0.0, resp.DistanceKm)
}

func TestEstimateNormalizesMultipleStopsAlias(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, nil)

	tripType := TripMultipleWay
	repo.On("GetRateMeter", mock.Anything, ServiceOutstation, "Sedan", &tripType).
		Return(&RateMeterRule{BaseFare: 400, PerKmRate: 12}, nil)

	resp, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType: "outstation",
		TripType:    "multiple_stops",
		DistanceKm:  floatPtr(100),
	})

	require.NoError(t, err)
	assert.Equal(t, TripMultipleWay, resp.TripType)
	assert.Equal(t, 1600.00, resp.Fare)
}

func TestEstimateOutstationRequiresTripType(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, nil)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType: "outstation",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "trip_type", validationErr.Field)
}

func TestEstimateRejectsUnknownServiceType(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, nil)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType: "corporate",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "service_type", validationErr.Field)
}

func TestEstimateSuppliedDistanceSkipsRouteProvider(t *testing.T) {
	repo := new(MockRepository)
	routes := new(MockRouteProvider)
	svc := NewService(repo, routes, nil)

	repo.On("GetRateMeter", mock.Anything, ServiceAirport, "Sedan", (*TripType)(nil)).
		Return(&RateMeterRule{BaseFare: 200, PerKmRate: 10, PerMinuteRate: 1}, nil)

	resp, err := svc.Estimate(context.Background(), EstimateRequest{
		ServiceType: "airport",
		DistanceKm:  floatPtr(40),
		DurationMin: floatPtr(60),
	})

	require.NoError(t, err)
	assert.Equal(t, 660.00, resp.Fare)
	routes.AssertNotCalled(t, "DistanceAndTime", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveRateDefaultsCategory(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, nil)

	exact := &RateMeterRule{ID: 1, ServiceType: ServiceLocal, CarCategory: "Sedan"}
	repo.On("GetRateMeter", mock.Anything, ServiceLocal, "Sedan", (*TripType)(nil)).Return(exact, nil)

	rule, err := svc.ResolveRate(context.Background(), ServiceLocal, "", nil)

	require.NoError(t, err)
	assert.Equal(t, exact, rule)
}
