package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
)

type pricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository returns a MySQL-backed domain.PricingRepository.
func NewPricingRepository(db *gorm.DB) domain.PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) Save(ctx context.Context, result *domain.PricingResult) error {
	model := toPricingResultModel(result)
	if model == nil {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	result.ID = model.ID
	result.CreatedAt = model.CreatedAt
	result.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *pricingRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	var model PricingResultModel
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at DESC, id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResultNotFound
		}
		return nil, err
	}
	return toPricingResult(&model), nil
}

func (r *pricingRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	var models []PricingResultModel
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	results := make([]*domain.PricingResult, 0, len(models))
	for i := range models {
		results = append(results, toPricingResult(&models[i]))
	}
	return results, nil
}
