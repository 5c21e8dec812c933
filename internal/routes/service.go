package routes

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/garudacabs/cab-booking/pkg/cache"
	"github.com/garudacabs/cab-booking/pkg/logger"
)

const defaultCacheTTL = 24 * time.Hour

// Service resolves routes with caching and provider fallback. Providers are
// tried in order; the first success is cached and returned.
type Service struct {
	providers []Provider
	cache     *cache.Manager
	cacheTTL  time.Duration
}

// NewService creates a new routes service. cacheManager may be nil to
// disable caching.
func NewService(cacheManager *cache.Manager, ttl time.Duration, providers ...Provider) *Service {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{
		providers: providers,
		cache:     cacheManager,
		cacheTTL:  ttl,
	}
}

// DistanceAndTime resolves road distance and travel time for a route
func (s *Service) DistanceAndTime(ctx context.Context, from, to Coordinate) (*DistanceTime, error) {
	key := CacheKey(from, to)

	if s.cache != nil {
		var cached DistanceTime
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			cached.CacheHit = true
			return &cached, nil
		}
	}

	var lastErr error
	for _, provider := range s.providers {
		result, err := provider.DistanceAndTime(ctx, from, to)
		if err != nil {
			logger.WarnContext(ctx, "route provider failed",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
				logger.WarnContext(ctx, "failed to cache route", zap.Error(err))
			}
		}
		return result, nil
	}

	if lastErr != nil {
		logger.ErrorContext(ctx, "all route providers failed", zap.Error(lastErr))
	}
	return nil, ErrRouteUnavailable
}
