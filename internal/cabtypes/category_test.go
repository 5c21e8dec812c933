package cabtypes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeriveCategory(t *testing.T) {
	tests := []struct {
		name        string
		optionName  string
		description string
		expected    string
	}{
		{"sedan by name", "Swift Dzire Sedan", "", "Sedan"},
		{"suv by name", "Mahindra XUV SUV", "", "SUV"},
		{"innova plain", "Toyota Innova", "7 seater", "Innova"},
		{"innova crysta beats innova", "Toyota Innova Crysta", "", "Innova Crysta"},
		{"crysta from description", "Toyota premium", "Innova Crysta 7 seats", "Innova Crysta"},
		{"tempo traveller", "Tempo Traveller", "12 seater", "Tempo"},
		{"urbenia", "Force Urbenia", "", "Urbenia"},
		{"minibus", "Luxury Minibus", "", "Minibus"},
		{"case insensitive", "force URBENIA van", "", "Urbenia"},
		{"no match", "Auto Rickshaw", "3 wheels", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveCategory(tt.optionName, tt.description))
		})
	}
}

type mockCarOptionRepo struct {
	mock.Mock
	RepositoryInterface
}

func (m *mockCarOptionRepo) GetCarOptionByID(ctx context.Context, id int64) (*CarOption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CarOption), args.Error(1)
}

func TestCategoryForOption(t *testing.T) {
	t.Run("derives from the stored option", func(t *testing.T) {
		repo := new(mockCarOptionRepo)
		svc := NewService(repo)

		repo.On("GetCarOptionByID", mock.Anything, int64(3)).
			Return(&CarOption{ID: 3, Name: "Toyota Innova Crysta", Seats: 7}, nil)

		category, err := svc.CategoryForOption(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, "Innova Crysta", category)
	})

	t.Run("propagates lookup failures", func(t *testing.T) {
		repo := new(mockCarOptionRepo)
		svc := NewService(repo)

		repo.On("GetCarOptionByID", mock.Anything, int64(9)).Return(nil, errors.New("gone"))

		_, err := svc.CategoryForOption(context.Background(), 9)

		require.Error(t, err)
	})
}
