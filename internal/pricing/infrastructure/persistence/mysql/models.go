package mysql

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
)

// PricingResultModel maps pricing results onto MySQL. Prices travel as
// decimal strings to avoid float round-trips in the database.
type PricingResultModel struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
	Symbol          string    `gorm:"column:symbol;type:varchar(32);index;not null"`
	OptionType      string    `gorm:"column:option_type;type:varchar(8);not null"`
	OptionPrice     string    `gorm:"column:option_price;type:decimal(32,18);not null"`
	UnderlyingPrice string    `gorm:"column:underlying_price;type:decimal(32,18);not null"`
	StrikePrice     string    `gorm:"column:strike_price;type:decimal(32,18);not null"`
	TimeToExpiry    float64   `gorm:"column:time_to_expiry;type:double;not null"`
	RiskFreeRate    float64   `gorm:"column:risk_free_rate;type:double"`
	Volatility      float64   `gorm:"column:volatility;type:double"`
	Steps           int       `gorm:"column:steps;type:int;not null"`
	PricingModel    string    `gorm:"column:pricing_model;type:varchar(32)"`
	CalculatedAt    int64     `gorm:"column:calculated_at;type:bigint;not null;index"`
}

func (PricingResultModel) TableName() string { return "pricing_results" }

func toPricingResultModel(res *domain.PricingResult) *PricingResultModel {
	if res == nil {
		return nil
	}
	return &PricingResultModel{
		ID:              res.ID,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
		Symbol:          res.Symbol,
		OptionType:      string(res.OptionType),
		OptionPrice:     res.OptionPrice.String(),
		UnderlyingPrice: res.UnderlyingPrice.String(),
		StrikePrice:     res.StrikePrice.String(),
		TimeToExpiry:    res.TimeToExpiry,
		RiskFreeRate:    res.RiskFreeRate,
		Volatility:      res.Volatility,
		Steps:           res.Steps,
		PricingModel:    res.PricingModel,
		CalculatedAt:    res.CalculatedAt,
	}
}

func toPricingResult(m *PricingResultModel) *domain.PricingResult {
	if m == nil {
		return nil
	}
	opPrice, _ := decimal.NewFromString(m.OptionPrice)
	ulPrice, _ := decimal.NewFromString(m.UnderlyingPrice)
	strike, _ := decimal.NewFromString(m.StrikePrice)

	return &domain.PricingResult{
		ID:              m.ID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Symbol:          m.Symbol,
		OptionType:      domain.OptionType(m.OptionType),
		OptionPrice:     opPrice,
		UnderlyingPrice: ulPrice,
		StrikePrice:     strike,
		TimeToExpiry:    m.TimeToExpiry,
		RiskFreeRate:    m.RiskFreeRate,
		Volatility:      m.Volatility,
		Steps:           m.Steps,
		PricingModel:    m.PricingModel,
		CalculatedAt:    m.CalculatedAt,
	}
}
