package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
)

type memoryRepository struct {
	mu      sync.Mutex
	nextID  uint
	results map[string][]*domain.PricingResult
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{results: make(map[string][]*domain.PricingResult)}
}

func (r *memoryRepository) Save(_ context.Context, result *domain.PricingResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	result.ID = r.nextID
	r.results[result.Symbol] = append(r.results[result.Symbol], result)
	return nil
}

func (r *memoryRepository) GetLatest(_ context.Context, symbol string) (*domain.PricingResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.results[symbol]
	if len(list) == 0 {
		return nil, domain.ErrResultNotFound
	}
	return list[len(list)-1], nil
}

func (r *memoryRepository) GetHistory(_ context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.results[symbol]
	out := make([]*domain.PricingResult, 0, limit)
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out, nil
}

type recordingPublisher struct {
	mu      sync.Mutex
	priced  []*domain.OptionPricedEvent
	errors  []*domain.PricingErrorEvent
	batches []*domain.BatchPricingCompletedEvent
}

func (p *recordingPublisher) PublishOptionPriced(_ context.Context, e *domain.OptionPricedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.priced = append(p.priced, e)
	return nil
}

func (p *recordingPublisher) PublishPricingError(_ context.Context, e *domain.PricingErrorEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = append(p.errors, e)
	return nil
}

func (p *recordingPublisher) PublishBatchPricingCompleted(_ context.Context, e *domain.BatchPricingCompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, e)
	return nil
}

func validCommand() PriceOptionCommand {
	return PriceOptionCommand{
		Symbol:          "AAPL-C-100",
		OptionType:      "CALL",
		StrikePrice:     100,
		UnderlyingPrice: 100,
		Expiry:          domain.TimeDuration{Value: 365, Factor: 365},
		RiskFreeRate:    0.05,
		Volatility:      0.2,
		Steps:           200,
	}
}

func TestPriceOption(t *testing.T) {
	repo := newMemoryRepository()
	publisher := &recordingPublisher{}
	svc := NewPricingCommandService(repo, publisher, nil, 500)

	result, err := svc.PriceOption(context.Background(), validCommand())
	require.NoError(t, err)

	assert.NotZero(t, result.ID)
	assert.Equal(t, domain.OptionTypeCall, result.OptionType)
	assert.Equal(t, domain.PricingModelBinomialCRR, result.PricingModel)
	assert.Equal(t, 200, result.Steps)
	assert.InDelta(t, 1.0, result.TimeToExpiry, 1e-12)
	assert.InDelta(t, 10.45, result.OptionPrice.InexactFloat64(), 0.05)

	saved, err := repo.GetLatest(context.Background(), "AAPL-C-100")
	require.NoError(t, err)
	assert.Equal(t, result.ID, saved.ID)

	require.Len(t, publisher.priced, 1)
	assert.Equal(t, "AAPL-C-100", publisher.priced[0].Symbol)
	assert.InDelta(t, result.OptionPrice.InexactFloat64(), publisher.priced[0].OptionPrice, 1e-12)
}

func TestPriceOptionDefaultsSteps(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewPricingCommandService(repo, nil, nil, 300)

	cmd := validCommand()
	cmd.Steps = 0
	result, err := svc.PriceOption(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 300, result.Steps)
}

func TestPriceOptionValidation(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*PriceOptionCommand)
		wantErr error
	}{
		"bad option type": {
			mutate:  func(cmd *PriceOptionCommand) { cmd.OptionType = "SWAP" },
			wantErr: domain.ErrInvalidOptionType,
		},
		"zero duration factor": {
			mutate:  func(cmd *PriceOptionCommand) { cmd.Expiry.Factor = 0 },
			wantErr: domain.ErrInvalidDuration,
		},
		"negative volatility": {
			mutate:  func(cmd *PriceOptionCommand) { cmd.Volatility = -0.2 },
			wantErr: domain.ErrInvalidParams,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newMemoryRepository()
			publisher := &recordingPublisher{}
			svc := NewPricingCommandService(repo, publisher, nil, 500)

			cmd := validCommand()
			tc.mutate(&cmd)

			_, err := svc.PriceOption(context.Background(), cmd)
			assert.ErrorIs(t, err, tc.wantErr)

			// Failures publish an error event and never persist.
			require.Len(t, publisher.errors, 1)
			_, err = repo.GetLatest(context.Background(), cmd.Symbol)
			assert.ErrorIs(t, err, domain.ErrResultNotFound)
		})
	}
}

func TestPriceOptionRequiresSymbol(t *testing.T) {
	svc := NewPricingCommandService(newMemoryRepository(), nil, nil, 500)
	cmd := validCommand()
	cmd.Symbol = ""
	_, err := svc.PriceOption(context.Background(), cmd)
	assert.Error(t, err)
}

func TestBatchPriceOptions(t *testing.T) {
	repo := newMemoryRepository()
	publisher := &recordingPublisher{}
	svc := NewPricingCommandService(repo, publisher, nil, 500)

	bad := validCommand()
	bad.Symbol = "BAD-1"
	bad.Expiry.Factor = -1

	put := validCommand()
	put.Symbol = "AAPL-P-100"
	put.OptionType = "PUT"

	batch, err := svc.BatchPriceOptions(context.Background(), BatchPriceOptionsCommand{
		Contracts: []PriceOptionCommand{validCommand(), put, bad},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, batch.BatchID)
	assert.Equal(t, 2, batch.SuccessCount)
	assert.Equal(t, 1, batch.FailureCount)
	require.Len(t, batch.Results, 2)

	require.Len(t, publisher.batches, 1)
	completed := publisher.batches[0]
	assert.Equal(t, batch.BatchID, completed.BatchID)
	assert.Equal(t, 3, completed.TotalContracts)
	assert.ElementsMatch(t, []string{"AAPL-C-100", "AAPL-P-100", "BAD-1"}, completed.Symbols)
}

func TestPricingQueryHistory(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewPricingCommandService(repo, nil, nil, 500)
	query := NewPricingQuery(repo)

	for i := 0; i < 3; i++ {
		_, err := svc.PriceOption(context.Background(), validCommand())
		require.NoError(t, err)
	}

	history, err := query.GetResultHistory(context.Background(), "AAPL-C-100", 2)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	latest, err := query.GetLatestResult(context.Background(), "AAPL-C-100")
	require.NoError(t, err)
	assert.Equal(t, history[0].ID, latest.ID)

	_, err = query.GetLatestResult(context.Background(), "MISSING")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}
