package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
	"github.com/wyfcoding/optionpricer/pkg/logger"
	"github.com/wyfcoding/optionpricer/pkg/metrics"
)

// PricingCommandService handles pricing command operations.
type PricingCommandService struct {
	repo         domain.PricingRepository
	publisher    domain.EventPublisher
	metrics      *metrics.Metrics
	defaultSteps int
}

// NewPricingCommandService creates a PricingCommandService. publisher and m
// may be nil; events and metrics are then skipped.
func NewPricingCommandService(repo domain.PricingRepository, publisher domain.EventPublisher, m *metrics.Metrics, defaultSteps int) *PricingCommandService {
	if defaultSteps <= 0 {
		defaultSteps = 500
	}
	return &PricingCommandService{
		repo:         repo,
		publisher:    publisher,
		metrics:      m,
		defaultSteps: defaultSteps,
	}
}

// PriceOption prices one American option on the binomial lattice, persists
// the result and publishes an OptionPriced event.
func (c *PricingCommandService) PriceOption(ctx context.Context, cmd PriceOptionCommand) (*domain.PricingResult, error) {
	if cmd.Symbol == "" {
		return nil, errors.New("symbol is required")
	}

	optionType := domain.OptionType(cmd.OptionType)
	// Zero means "use the configured default"; negative values fall
	// through to the kernel and are rejected there.
	steps := cmd.Steps
	if steps == 0 {
		steps = c.defaultSteps
	}

	start := time.Now()

	timeToExpiry, err := cmd.Expiry.ToYears()
	if err != nil {
		c.reportFailure(ctx, cmd, start, err)
		return nil, err
	}

	price, err := domain.CalculateBinomial(optionType, domain.BinomialInput{
		S:     cmd.UnderlyingPrice,
		K:     cmd.StrikePrice,
		T:     timeToExpiry,
		R:     cmd.RiskFreeRate,
		Sigma: cmd.Volatility,
		Steps: steps,
	})
	if err != nil {
		c.reportFailure(ctx, cmd, start, err)
		return nil, err
	}

	result := &domain.PricingResult{
		Symbol:          cmd.Symbol,
		OptionType:      optionType,
		OptionPrice:     decimal.NewFromFloat(price),
		UnderlyingPrice: decimal.NewFromFloat(cmd.UnderlyingPrice),
		StrikePrice:     decimal.NewFromFloat(cmd.StrikePrice),
		TimeToExpiry:    timeToExpiry,
		RiskFreeRate:    cmd.RiskFreeRate,
		Volatility:      cmd.Volatility,
		Steps:           steps,
		PricingModel:    domain.PricingModelBinomialCRR,
		CalculatedAt:    time.Now().Unix(),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := c.repo.Save(ctx, result); err != nil {
		c.metrics.ObservePricing(start, err)
		return nil, err
	}
	c.metrics.ObservePricing(start, nil)

	if c.publisher != nil {
		event := &domain.OptionPricedEvent{
			Symbol:          cmd.Symbol,
			OptionType:      optionType,
			StrikePrice:     cmd.StrikePrice,
			UnderlyingPrice: cmd.UnderlyingPrice,
			TimeToExpiry:    timeToExpiry,
			RiskFreeRate:    cmd.RiskFreeRate,
			Volatility:      cmd.Volatility,
			Steps:           steps,
			OptionPrice:     price,
			PricingModel:    result.PricingModel,
			CalculatedAt:    result.CalculatedAt,
			OccurredOn:      time.Now(),
		}
		if err := c.publisher.PublishOptionPriced(ctx, event); err != nil {
			logger.Warn(ctx, "failed to publish option priced event", "symbol", cmd.Symbol, "error", err)
		}
	}

	return result, nil
}

// reportFailure records the pricing failure in metrics and publishes a
// PricingError event on a best-effort basis.
func (c *PricingCommandService) reportFailure(ctx context.Context, cmd PriceOptionCommand, start time.Time, cause error) {
	c.metrics.ObservePricing(start, cause)
	if c.publisher == nil {
		return
	}
	event := &domain.PricingErrorEvent{
		Symbol:      cmd.Symbol,
		OptionType:  domain.OptionType(cmd.OptionType),
		StrikePrice: cmd.StrikePrice,
		Error:       cause.Error(),
		OccurredAt:  time.Now().Unix(),
		OccurredOn:  time.Now(),
	}
	if err := c.publisher.PublishPricingError(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish pricing error event", "symbol", cmd.Symbol, "error", err)
	}
}

// BatchPriceOptions prices every contract in the batch, collecting per
// contract failures instead of aborting the run.
func (c *PricingCommandService) BatchPriceOptions(ctx context.Context, cmd BatchPriceOptionsCommand) (*BatchPricingResult, error) {
	if cmd.BatchID == "" {
		cmd.BatchID = uuid.NewString()
	}

	results := make([]*domain.PricingResult, 0, len(cmd.Contracts))
	successCount := 0
	failureCount := 0
	totalTime := 0.0

	for _, contract := range cmd.Contracts {
		startTime := time.Now()
		result, err := c.PriceOption(ctx, contract)
		totalTime += time.Since(startTime).Seconds()

		if err != nil {
			failureCount++
			logger.Warn(ctx, "batch contract pricing failed", "batch_id", cmd.BatchID, "symbol", contract.Symbol, "error", err)
			continue
		}

		results = append(results, result)
		successCount++
	}

	avg := 0.0
	if len(cmd.Contracts) > 0 {
		avg = totalTime / float64(len(cmd.Contracts))
	}

	if c.metrics != nil {
		c.metrics.BatchSize.Observe(float64(len(cmd.Contracts)))
	}

	if c.publisher != nil {
		event := &domain.BatchPricingCompletedEvent{
			BatchID:        cmd.BatchID,
			Symbols:        extractSymbols(cmd.Contracts),
			TotalContracts: len(cmd.Contracts),
			SuccessCount:   successCount,
			FailureCount:   failureCount,
			AverageTime:    avg,
			CompletedAt:    time.Now().Unix(),
			OccurredOn:     time.Now(),
		}
		if err := c.publisher.PublishBatchPricingCompleted(ctx, event); err != nil {
			logger.Warn(ctx, "failed to publish batch completed event", "batch_id", cmd.BatchID, "error", err)
		}
	}

	return &BatchPricingResult{
		BatchID:      cmd.BatchID,
		Results:      results,
		SuccessCount: successCount,
		FailureCount: failureCount,
		AverageTime:  avg,
	}, nil
}

func extractSymbols(contracts []PriceOptionCommand) []string {
	symbols := make([]string, 0, len(contracts))
	seen := make(map[string]bool)

	for _, contract := range contracts {
		if !seen[contract.Symbol] {
			symbols = append(symbols, contract.Symbol)
			seen[contract.Symbol] = true
		}
	}
	return symbols
}
