package ratemeters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/garudacabs/cab-booking/pkg/common"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, rm *RateMeter) error {
	args := m.Called(ctx, rm)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*RateMeter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RateMeter), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*RateMeter, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*RateMeter), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, rm *RateMeter) error {
	args := m.Called(ctx, rm)
	return args.Error(0)
}

func (m *MockRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestCreateRateMeter(t *testing.T) {
	t.Run("normalizes service and trip type", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(rm *RateMeter) bool {
			return rm.ServiceType == "outstation" && rm.TripType != nil && *rm.TripType == "multiple_way"
		})).Return(nil)

		rm, err := svc.Create(context.Background(), CreateRateMeterRequest{
			ServiceType: "Outstation",
			CarCategory: "SUV",
			TripType:    strPtr("multiple_stops"),
			BaseFare:    500,
			PerKmRate:   12,
			IsActive:    true,
		})

		require.NoError(t, err)
		assert.Equal(t, "outstation", rm.ServiceType)
		assert.Equal(t, "multiple_way", *rm.TripType)
	})

	t.Run("rejects unknown service type", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(context.Background(), CreateRateMeterRequest{
			ServiceType: "corporate",
			CarCategory: "Sedan",
		})

		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
	})

	t.Run("requires trip type for outstation", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(context.Background(), CreateRateMeterRequest{
			ServiceType: "outstation",
			CarCategory: "Sedan",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "trip_type")
	})

	t.Run("rejects trip type outside outstation", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(context.Background(), CreateRateMeterRequest{
			ServiceType: "local",
			CarCategory: "Sedan",
			TripType:    strPtr("one_way"),
		})

		require.Error(t, err)
	})
}

func TestListRateMeters(t *testing.T) {
	t.Run("clamps limit", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("List", mock.Anything, ListFilter{Limit: 20, Offset: 0}).
			Return([]*RateMeter{}, int64(0), nil)

		_, _, err := svc.List(context.Background(), ListFilter{Limit: 5000})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid service type filter", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, _, err := svc.List(context.Background(), ListFilter{ServiceType: "bogus", Limit: 10})

		require.Error(t, err)
	})
}
