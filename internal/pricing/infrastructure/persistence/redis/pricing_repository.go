// Package redis caches the latest pricing result per symbol. It only serves
// point lookups; history queries fall through to MySQL.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
)

type PricingRedisRepository struct {
	client       redis.UniversalClient
	resultPrefix string
	ttl          time.Duration
}

func NewPricingRedisRepository(client redis.UniversalClient, ttl time.Duration) *PricingRedisRepository {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PricingRedisRepository{
		client:       client,
		resultPrefix: "pricing_result:",
		ttl:          ttl,
	}
}

func (r *PricingRedisRepository) Save(ctx context.Context, result *domain.PricingResult) error {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.resultKey(result.Symbol), data, r.ttl).Err()
}

func (r *PricingRedisRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	if symbol == "" {
		return nil, domain.ErrResultNotFound
	}
	data, err := r.client.Get(ctx, r.resultKey(symbol)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	var result domain.PricingResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetHistory is not served from the cache.
func (r *PricingRedisRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	return nil, domain.ErrResultNotFound
}

func (r *PricingRedisRepository) resultKey(symbol string) string {
	return fmt.Sprintf("%s%s", r.resultPrefix, symbol)
}
