package cabtypes

import (
	"context"

	"go.uber.org/zap"

	"github.com/garudacabs/cab-booking/pkg/logger"
)

// Service handles cab type and car option administration
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new cab types service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// CategoryForOption resolves a car option to its derived vehicle category.
// Satisfies the fare engine's car category lookup.
func (s *Service) CategoryForOption(ctx context.Context, carOptionID int64) (string, error) {
	option, err := s.repo.GetCarOptionByID(ctx, carOptionID)
	if err != nil {
		return "", err
	}
	return DeriveCategory(option.Name, option.Description), nil
}

// CreateCabType stores a new cab type
func (s *Service) CreateCabType(ctx context.Context, req CreateCabTypeRequest) (*CabType, error) {
	ct := &CabType{
		Name:          req.Name,
		BaseFare:      req.BaseFare,
		PerKmRate:     req.PerKmRate,
		PerMinuteRate: req.PerMinuteRate,
		PerHourRate:   req.PerHourRate,
		IsActive:      req.IsActive,
	}
	if err := s.repo.CreateCabType(ctx, ct); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "cab type created", zap.Int64("id", ct.ID), zap.String("name", ct.Name))
	return ct, nil
}

// GetCabType retrieves a cab type by id
func (s *Service) GetCabType(ctx context.Context, id int64) (*CabType, error) {
	return s.repo.GetCabTypeByID(ctx, id)
}

// ListCabTypes lists cab types
func (s *Service) ListCabTypes(ctx context.Context, limit, offset int, includeInactive bool) ([]*CabType, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListCabTypes(ctx, limit, offset, includeInactive)
}

// UpdateCabType updates a cab type
func (s *Service) UpdateCabType(ctx context.Context, id int64, req UpdateCabTypeRequest) (*CabType, error) {
	ct := &CabType{
		ID:            id,
		Name:          req.Name,
		BaseFare:      req.BaseFare,
		PerKmRate:     req.PerKmRate,
		PerMinuteRate: req.PerMinuteRate,
		PerHourRate:   req.PerHourRate,
		IsActive:      req.IsActive,
	}
	if err := s.repo.UpdateCabType(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

// DeactivateCabType soft-deletes a cab type
func (s *Service) DeactivateCabType(ctx context.Context, id int64) error {
	return s.repo.DeactivateCabType(ctx, id)
}

// CreateCarOption stores a new car option
func (s *Service) CreateCarOption(ctx context.Context, req CreateCarOptionRequest) (*CarOption, error) {
	co := &CarOption{
		Name:        req.Name,
		Description: req.Description,
		Seats:       req.Seats,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}
	if err := s.repo.CreateCarOption(ctx, co); err != nil {
		return nil, err
	}

	if DeriveCategory(co.Name, co.Description) == "" {
		logger.WarnContext(ctx, "car option matches no vehicle category, fares will use the default",
			zap.Int64("car_option_id", co.ID),
			zap.String("name", co.Name),
		)
	}
	return co, nil
}

// GetCarOption retrieves a car option by id
func (s *Service) GetCarOption(ctx context.Context, id int64) (*CarOption, error) {
	return s.repo.GetCarOptionByID(ctx, id)
}

// ListCarOptions lists car options
func (s *Service) ListCarOptions(ctx context.Context, limit, offset int, includeInactive bool) ([]*CarOption, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListCarOptions(ctx, limit, offset, includeInactive)
}

// UpdateCarOption updates a car option
func (s *Service) UpdateCarOption(ctx context.Context, id int64, req UpdateCarOptionRequest) (*CarOption, error) {
	co := &CarOption{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Seats:       req.Seats,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}
	if err := s.repo.UpdateCarOption(ctx, co); err != nil {
		return nil, err
	}
	return co, nil
}

// DeactivateCarOption soft-deletes a car option
func (s *Service) DeactivateCarOption(ctx context.Context, id int64) error {
	return s.repo.DeactivateCarOption(ctx, id)
}
