package fares

import (
	"context"
	"errors"
	"fmt"

	"github.com/garudacabs/cab-booking/pkg/common"
	"github.com/garudacabs/cab-booking/pkg/logger"
	"go.uber.org/zap"
)

// Resolver selects the single applicable pricing rule for a trip.
// Specificity is preferred, but any same-service-type rate and finally the
// legacy cab type table are acceptable fallbacks: pricing is maintained by
// operators who may not have populated every combination, and a booking
// should not be blocked while some rule exists.
type Resolver struct {
	repo RepositoryInterface
}

// NewResolver creates a new rate resolver
func NewResolver(repo RepositoryInterface) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveOptions contains the lookup keys for rule resolution
type ResolveOptions struct {
	ServiceType ServiceType
	CarCategory string
	// TripType is consulted only for outstation lookups
	TripType *TripType
	// CabTypeID narrows the legacy fallback when the caller knows the cab type
	CabTypeID *int64
}

// Resolve selects exactly one pricing rule, most specific first:
// exact rate meter, then any rate meter for the service type, then a legacy
// cab type row. Fails with ErrNoPricingRule when nothing is configured.
func (r *Resolver) Resolve(ctx context.Context, opts ResolveOptions) (PricingRule, error) {
	var tripType *TripType
	if opts.ServiceType == ServiceOutstation {
		tripType = opts.TripType
	}

	rule, err := r.repo.GetRateMeter(ctx, opts.ServiceType, opts.CarCategory, tripType)
	if err == nil {
		return rule, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up rate meter: %w", err)
	}

	generic, err := r.repo.GetGenericRateMeter(ctx, opts.ServiceType)
	if err == nil {
		logger.InfoContext(ctx, "no category-specific rate meter, using generic rate",
			zap.String("service_type", string(opts.ServiceType)),
			zap.String("car_category", opts.CarCategory),
		)
		resolverFallbacksTotal.WithLabelValues(string(opts.ServiceType), "generic").Inc()
		return generic, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up generic rate meter: %w", err)
	}

	legacy, err := r.resolveLegacy(ctx, opts)
	if err == nil {
		resolverFallbacksTotal.WithLabelValues(string(opts.ServiceType), "legacy").Inc()
		return legacy, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up cab type: %w", err)
	}

	return nil, ErrNoPricingRule
}

// resolveLegacy walks the legacy cab type fallbacks: by id when the caller
// supplied one, then by name matching the service type, then any active row.
func (r *Resolver) resolveLegacy(ctx context.Context, opts ResolveOptions) (*LegacyCabTypeRule, error) {
	if opts.CabTypeID != nil {
		cabType, err := r.repo.GetCabTypeByID(ctx, *opts.CabTypeID)
		if err == nil {
			return cabType, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	cabType, err := r.repo.GetCabTypeByName(ctx, string(opts.ServiceType))
	if err == nil {
		return cabType, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	return r.repo.GetFirstActiveCabType(ctx)
}
