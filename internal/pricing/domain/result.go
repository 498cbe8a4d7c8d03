package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingResult is the persisted outcome of one lattice computation.
type PricingResult struct {
	ID              uint            `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Symbol          string          `json:"symbol"`
	OptionType      OptionType      `json:"option_type"`
	OptionPrice     decimal.Decimal `json:"option_price"`
	UnderlyingPrice decimal.Decimal `json:"underlying_price"`
	StrikePrice     decimal.Decimal `json:"strike_price"`
	TimeToExpiry    float64         `json:"time_to_expiry"`
	RiskFreeRate    float64         `json:"risk_free_rate"`
	Volatility      float64         `json:"volatility"`
	Steps           int             `json:"steps"`
	PricingModel    string          `json:"pricing_model"`
	CalculatedAt    int64           `json:"calculated_at"`
}

// PricingModelBinomialCRR names the only pricing model this service runs.
const PricingModelBinomialCRR = "BinomialCRR"
