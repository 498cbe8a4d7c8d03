// Package persistence combines the MySQL and Redis repositories into a
// write-through, cache-first store.
package persistence

import (
	"context"
	"errors"

	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
	"github.com/wyfcoding/optionpricer/pkg/logger"
)

type compositePricingRepository struct {
	mysql domain.PricingRepository
	redis domain.PricingRepository
}

// NewCompositePricingRepository writes through MySQL into Redis and reads
// latest results cache-first. The redis side may be nil.
func NewCompositePricingRepository(mysql, redis domain.PricingRepository) domain.PricingRepository {
	return &compositePricingRepository{
		mysql: mysql,
		redis: redis,
	}
}

func (r *compositePricingRepository) Save(ctx context.Context, result *domain.PricingResult) error {
	if err := r.mysql.Save(ctx, result); err != nil {
		return err
	}
	if r.redis == nil {
		return nil
	}
	// The cache is best-effort; a stale or missing entry falls back to
	// MySQL on read.
	if err := r.redis.Save(ctx, result); err != nil {
		logger.Warn(ctx, "failed to cache pricing result", "symbol", result.Symbol, "error", err)
	}
	return nil
}

func (r *compositePricingRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	if r.redis != nil {
		result, err := r.redis.GetLatest(ctx, symbol)
		if err == nil && result != nil {
			return result, nil
		}
		if err != nil && !errors.Is(err, domain.ErrResultNotFound) {
			logger.Warn(ctx, "cache read failed", "symbol", symbol, "error", err)
		}
	}
	return r.mysql.GetLatest(ctx, symbol)
}

func (r *compositePricingRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	return r.mysql.GetHistory(ctx, symbol, limit)
}
