package ratemeters

import "context"

// RepositoryInterface defines rate meter storage operations
type RepositoryInterface interface {
	Create(ctx context.Context, rm *RateMeter) error
	GetByID(ctx context.Context, id int64) (*RateMeter, error)
	List(ctx context.Context, filter ListFilter) ([]*RateMeter, int64, error)
	Update(ctx context.Context, rm *RateMeter) error
	Deactivate(ctx context.Context, id int64) error
}
