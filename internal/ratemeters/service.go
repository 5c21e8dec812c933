package ratemeters

import (
	"context"

	"go.uber.org/zap"

	"github.com/garudacabs/cab-booking/internal/fares"
	"github.com/garudacabs/cab-booking/pkg/common"
	"github.com/garudacabs/cab-booking/pkg/logger"
)

// Service handles rate meter administration
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new rate meters service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new rate meter
func (s *Service) Create(ctx context.Context, req CreateRateMeterRequest) (*RateMeter, error) {
	rm, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}

	if rm.BaseKmPerDay > 0 {
		// Round trips price a fixed allowance per day; this field is stored
		// but the fare formula does not read it.
		logger.WarnContext(ctx, "rate meter has base_km_per_day set, fares use the fixed per-day allowance",
			zap.Int64("rate_meter_id", rm.ID),
			zap.Float64("base_km_per_day", rm.BaseKmPerDay),
			zap.Float64("allowance", fares.RoundTripKmPerDay),
		)
	}

	logger.InfoContext(ctx, "rate meter created",
		zap.Int64("id", rm.ID),
		zap.String("service_type", rm.ServiceType),
		zap.String("car_category", rm.CarCategory),
	)
	return rm, nil
}

// Get retrieves a rate meter by id
func (s *Service) Get(ctx context.Context, id int64) (*RateMeter, error) {
	return s.repo.GetByID(ctx, id)
}

// List lists rate meters
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*RateMeter, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.ServiceType != "" {
		serviceType, ok := fares.ParseServiceType(filter.ServiceType)
		if !ok {
			return nil, 0, common.NewValidationError("service_type must be local, airport or outstation")
		}
		filter.ServiceType = string(serviceType)
	}
	return s.repo.List(ctx, filter)
}

// Update validates and stores changes to a rate meter
func (s *Service) Update(ctx context.Context, id int64, req UpdateRateMeterRequest) (*RateMeter, error) {
	rm, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	rm.ID = id

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

// Deactivate soft-deletes a rate meter
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

// fromRequest builds a RateMeter from a request, normalizing the service and
// trip type values the resolver matches against.
func (s *Service) fromRequest(req CreateRateMeterRequest) (*RateMeter, error) {
	serviceType, ok := fares.ParseServiceType(req.ServiceType)
	if !ok {
		return nil, common.NewValidationError("service_type must be local, airport or outstation")
	}

	var tripType *string
	if serviceType == fares.ServiceOutstation {
		if req.TripType == nil {
			return nil, common.NewValidationError("trip_type is required for outstation rate meters")
		}
		parsed, ok := fares.ParseTripType(*req.TripType)
		if !ok {
			return nil, common.NewValidationError("trip_type must be one_way, round_trip or multiple_way")
		}
		value := string(parsed)
		tripType = &value
	} else if req.TripType != nil {
		return nil, common.NewValidationError("trip_type is only valid for outstation rate meters")
	}

	return &RateMeter{
		ServiceType:   string(serviceType),
		CarCategory:   req.CarCategory,
		TripType:      tripType,
		BaseFare:      req.BaseFare,
		PerKmRate:     req.PerKmRate,
		PerMinuteRate: req.PerMinuteRate,
		PerHourRate:   req.PerHourRate,
		ExtraKmRate:   req.ExtraKmRate,
		MinKm:         req.MinKm,
		BaseKmPerDay:  req.BaseKmPerDay,
		DriverCharges: req.DriverCharges,
		NightCharges:  req.NightCharges,
		IsActive:      req.IsActive,
	}, nil
}
