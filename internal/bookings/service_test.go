package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/garudacabs/cab-booking/internal/fares"
	"github.com/garudacabs/cab-booking/pkg/common"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]Booking, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockEstimator struct {
	mock.Mock
}

func (m *MockEstimator) Estimate(ctx context.Context, req fares.EstimateRequest) (*fares.EstimateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fares.EstimateResponse), args.Error(1)
}

func validCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ServiceType:   "local",
		PickupAddress: "12 MG Road, Bengaluru",
		PickupAt:      time.Now().Add(2 * time.Hour),
		NumberOfHours: 4,
	}
}

func TestServiceCreate(t *testing.T) {
	userID := uuid.New()

	t.Run("persists quoted fare snapshot", func(t *testing.T) {
		repo := new(MockRepository)
		estimator := new(MockEstimator)
		svc := NewService(repo, estimator)

		estimator.On("Estimate", mock.Anything, mock.Anything).Return(&fares.EstimateResponse{
			ServiceType:          fares.ServiceLocal,
			CarCategory:          "Sedan",
			Fare:                 300.00,
			EstimatedTimeMinutes: 240,
			RuleKind:             fares.RuleKindRateMeter,
			Breakdown:            fares.FareBreakdown{BaseFare: 100, TimeCharge: 200, ServiceMultiplier: 1.0},
		}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(b *Booking) bool {
			return b.Status == StatusPending &&
				b.Fare == 300.00 &&
				b.ServiceType == "local" &&
				b.CarCategory == "Sedan" &&
				b.RuleKind == "rate_meter" &&
				b.UserID == userID
		})).Return(nil)

		booking, err := svc.Create(context.Background(), userID, validCreateRequest())
		require.NoError(t, err)
		assert.Equal(t, StatusPending, booking.Status)
		assert.Equal(t, 300.00, booking.Fare)
		assert.NotEqual(t, uuid.Nil, booking.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects pickup time in the past", func(t *testing.T) {
		repo := new(MockRepository)
		estimator := new(MockEstimator)
		svc := NewService(repo, estimator)

		req := validCreateRequest()
		req.PickupAt = time.Now().Add(-time.Hour)

		_, err := svc.Create(context.Background(), userID, req)
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		estimator.AssertNotCalled(t, "Estimate", mock.Anything, mock.Anything)
	})

	t.Run("quote failure aborts the booking", func(t *testing.T) {
		repo := new(MockRepository)
		estimator := new(MockEstimator)
		svc := NewService(repo, estimator)

		estimator.On("Estimate", mock.Anything, mock.Anything).Return(nil, fares.ErrNoPricingRule)

		_, err := svc.Create(context.Background(), userID, validCreateRequest())
		require.ErrorIs(t, err, fares.ErrNoPricingRule)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestServiceCancel(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.New()

	t.Run("owner cancels a pending booking", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEstimator))

		repo.On("GetByID", mock.Anything, bookingID).Return(&Booking{
			ID: bookingID, UserID: userID, Status: StatusPending,
		}, nil)
		repo.On("UpdateStatus", mock.Anything, bookingID, StatusCancelled).Return(nil)

		booking, err := svc.Cancel(context.Background(), userID, bookingID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, booking.Status)
	})

	t.Run("another user cannot cancel", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEstimator))

		repo.On("GetByID", mock.Anything, bookingID).Return(&Booking{
			ID: bookingID, UserID: uuid.New(), Status: StatusPending,
		}, nil)

		_, err := svc.Cancel(context.Background(), userID, bookingID)
		require.ErrorIs(t, err, common.ErrForbidden)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ongoing booking cannot be cancelled", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEstimator))

		repo.On("GetByID", mock.Anything, bookingID).Return(&Booking{
			ID: bookingID, UserID: userID, Status: StatusOngoing,
		}, nil)

		_, err := svc.Cancel(context.Background(), userID, bookingID)
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestServiceUpdateStatus(t *testing.T) {
	bookingID := uuid.New()

	t.Run("pending moves to confirmed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEstimator))

		repo.On("GetByID", mock.Anything, bookingID).Return(&Booking{
			ID: bookingID, UserID: uuid.New(), Status: StatusPending,
		}, nil)
		repo.On("UpdateStatus", mock.Anything, bookingID, StatusConfirmed).Return(nil)

		booking, err := svc.UpdateStatus(context.Background(), bookingID, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, booking.Status)
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEstimator))

		repo.On("GetByID", mock.Anything, bookingID).Return(&Booking{
			ID: bookingID, UserID: uuid.New(), Status: StatusPending,
		}, nil)

		_, err := svc.UpdateStatus(context.Background(), bookingID, StatusCompleted)
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
	})

	t.Run("not found surfaces", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEstimator))

		repo.On("GetByID", mock.Anything, bookingID).Return(nil, errors.New("booking: resource not found"))

		_, err := svc.UpdateStatus(context.Background(), bookingID, StatusConfirmed)
		require.Error(t, err)
	})
}

func TestServiceList(t *testing.T) {
	t.Run("clamps out of range limit", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEstimator))

		repo.On("List", mock.Anything, mock.MatchedBy(func(f ListFilter) bool {
			return f.Limit == 20 && f.Offset == 0
		})).Return([]Booking{}, int64(0), nil)

		_, _, err := svc.List(context.Background(), ListFilter{Limit: 9999, Offset: -5})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEstimator))

		_, _, err := svc.List(context.Background(), ListFilter{Status: "archived"})
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
