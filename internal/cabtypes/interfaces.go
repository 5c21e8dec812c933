package cabtypes

import "context"

// RepositoryInterface defines cab type and car option storage operations
type RepositoryInterface interface {
	// Cab types
	CreateCabType(ctx context.Context, ct *CabType) error
	GetCabTypeByID(ctx context.Context, id int64) (*CabType, error)
	ListCabTypes(ctx context.Context, limit, offset int, includeInactive bool) ([]*CabType, int64, error)
	UpdateCabType(ctx context.Context, ct *CabType) error
	DeactivateCabType(ctx context.Context, id int64) error

	// Car options
	CreateCarOption(ctx context.Context, co *CarOption) error
	GetCarOptionByID(ctx context.Context, id int64) (*CarOption, error)
	ListCarOptions(ctx context.Context, limit, offset int, includeInactive bool) ([]*CarOption, int64, error)
	UpdateCarOption(ctx context.Context, co *CarOption) error
	DeactivateCarOption(ctx context.Context, id int64) error
}
