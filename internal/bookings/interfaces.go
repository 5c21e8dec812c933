package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/garudacabs/cab-booking/internal/fares"
)

// RepositoryInterface defines the booking persistence contract
type RepositoryInterface interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, filter ListFilter) ([]Booking, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Estimator produces a fare quote for a trip request
type Estimator interface {
	Estimate(ctx context.Context, req fares.EstimateRequest) (*fares.EstimateResponse, error)
}
