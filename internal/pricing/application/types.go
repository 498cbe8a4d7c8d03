package application

import (
	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
)

// PriceOptionCommand carries one pricing request.
type PriceOptionCommand struct {
	Symbol          string              `json:"symbol"`
	OptionType      string              `json:"option_type"`
	StrikePrice     float64             `json:"strike_price"`
	UnderlyingPrice float64             `json:"underlying_price"`
	Expiry          domain.TimeDuration `json:"expiry"`
	RiskFreeRate    float64             `json:"risk_free_rate"`
	Volatility      float64             `json:"volatility"`
	// Steps overrides the configured lattice resolution when positive.
	Steps int `json:"steps"`
}

// BatchPriceOptionsCommand prices a set of contracts in one pass.
type BatchPriceOptionsCommand struct {
	BatchID   string               `json:"batch_id"`
	Contracts []PriceOptionCommand `json:"contracts"`
}

// BatchPricingResult aggregates the outcome of a batch run.
type BatchPricingResult struct {
	BatchID      string                  `json:"batch_id"`
	Results      []*domain.PricingResult `json:"results"`
	SuccessCount int                     `json:"success_count"`
	FailureCount int                     `json:"failure_count"`
	AverageTime  float64                 `json:"average_time"`
}
