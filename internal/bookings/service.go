package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garudacabs/cab-booking/internal/fares"
	"github.com/garudacabs/cab-booking/pkg/common"
	"github.com/garudacabs/cab-booking/pkg/logger"
	"github.com/garudacabs/cab-booking/pkg/validation"
)

// validTransitions maps a booking status to the statuses it may move to.
// Completed and cancelled are terminal.
var validTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusOngoing, StatusCancelled},
	StatusOngoing:   {StatusCompleted},
}

// Service handles booking business logic
type Service struct {
	repo      RepositoryInterface
	estimator Estimator
}

func NewService(repo RepositoryInterface, estimator Estimator) *Service {
	return &Service{repo: repo, estimator: estimator}
}

// Create quotes the trip and persists the booking with its fare snapshot.
// The quoted fare is final for this booking.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error) {
	if req.PickupAt.Before(time.Now()) {
		return nil, common.NewValidationError("pickup time must be in the future")
	}
	if req.PickupLatitude != nil && req.PickupLongitude != nil {
		if err := validation.ValidateCoordinates(*req.PickupLatitude, *req.PickupLongitude); err != nil {
			return nil, common.NewValidationError("invalid pickup location: " + err.Error())
		}
	}
	if req.DropoffLatitude != nil && req.DropoffLongitude != nil {
		if err := validation.ValidateCoordinates(*req.DropoffLatitude, *req.DropoffLongitude); err != nil {
			return nil, common.NewValidationError("invalid dropoff location: " + err.Error())
		}
	}

	estimate, err := s.estimator.Estimate(ctx, fares.EstimateRequest{
		ServiceType:      req.ServiceType,
		TripType:         req.TripType,
		CarOptionID:      req.CarOptionID,
		PickupLatitude:   req.PickupLatitude,
		PickupLongitude:  req.PickupLongitude,
		DropoffLatitude:  req.DropoffLatitude,
		DropoffLongitude: req.DropoffLongitude,
		NumberOfHours:    req.NumberOfHours,
		NumberOfDays:     req.NumberOfDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to quote booking: %w", err)
	}

	var tripType *string
	if estimate.TripType != "" {
		t := string(estimate.TripType)
		tripType = &t
	}

	booking := &Booking{
		ID:             uuid.New(),
		UserID:         userID,
		ServiceType:    string(estimate.ServiceType),
		TripType:       tripType,
		CarCategory:    estimate.CarCategory,
		CarOptionID:    req.CarOptionID,
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
		PickupLat:      req.PickupLatitude,
		PickupLng:      req.PickupLongitude,
		DropoffLat:     req.DropoffLatitude,
		DropoffLng:     req.DropoffLongitude,
		PickupAt:       req.PickupAt,
		ReturnAt:       req.ReturnAt,
		NumberOfHours:  req.NumberOfHours,
		NumberOfDays:   req.NumberOfDays,

		Fare:                 estimate.Fare,
		DistanceKm:           estimate.DistanceKm,
		EstimatedTimeMinutes: estimate.EstimatedTimeMinutes,
		RuleKind:             string(estimate.RuleKind),
		FareBreakdown:        estimate.Breakdown,

		Status: StatusPending,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("service_type", booking.ServiceType),
		zap.Float64("fare", booking.Fare),
	)
	return booking, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Booking, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Status != "" {
		if _, ok := validTransitions[filter.Status]; !ok && filter.Status != StatusCompleted && filter.Status != StatusCancelled {
			return nil, 0, common.NewValidationError(fmt.Sprintf("invalid status filter: %s", filter.Status))
		}
	}
	return s.repo.List(ctx, filter)
}

// Cancel moves a booking to cancelled. Only the owning user may cancel, and
// only before the ride starts.
func (s *Service) Cancel(ctx context.Context, userID, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, common.NewForbiddenError("booking belongs to another user")
	}
	if err := s.transition(ctx, booking, StatusCancelled); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateStatus applies an admin-driven status change subject to the
// transition table.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, booking, status); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *Service) transition(ctx context.Context, booking *Booking, target string) error {
	allowed := false
	for _, next := range validTransitions[booking.Status] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return common.NewValidationError(fmt.Sprintf("cannot move booking from %s to %s", booking.Status, target))
	}
	if err := s.repo.UpdateStatus(ctx, booking.ID, target); err != nil {
		return err
	}
	booking.Status = target
	return nil
}
