package application

import (
	"context"

	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
)

// PricingQuery handles pricing read operations.
type PricingQuery struct {
	repo domain.PricingRepository
}

func NewPricingQuery(repo domain.PricingRepository) *PricingQuery {
	return &PricingQuery{repo: repo}
}

// GetLatestResult returns the most recent pricing result for a symbol.
func (q *PricingQuery) GetLatestResult(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	return q.repo.GetLatest(ctx, symbol)
}

// GetResultHistory returns up to limit recent results for a symbol, newest
// first.
func (q *PricingQuery) GetResultHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return q.repo.GetHistory(ctx, symbol, limit)
}
